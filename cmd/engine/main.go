package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"plugboard-engine/internal/config"
	"plugboard-engine/internal/events"
	"plugboard-engine/internal/httpapi"
	"plugboard-engine/internal/review"
	"plugboard-engine/internal/source"
)

func main() {
	// Engine data dir: use env if provided (desktop shell can pass one),
	// else local folder.
	dataDir := os.Getenv("PLUGBOARD_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Single instance per data dir. Two engines sharing one sqlite file is
	// a corruption risk, not a feature.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "plugboard.db")
	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	hub := events.NewHub()

	var importStatus atomic.Value
	importStatus.Store(httpapi.ImportStatus{})

	src := source.New()
	enricher := source.NewEnricher()

	deps := httpapi.Deps{
		DB:           db,
		Hub:          hub,
		CfgVal:       &cfgVal,
		ImportStatus: &importStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		FetchURLs:    src.FetchAll,
		RunImport: func(ctx context.Context, db *sql.DB, cfg config.Config, urls []string) review.Summary {
			p := review.NewPipeline(cfg)
			if cfg.Importing.EnrichTitles {
				p.TitleFor = func(ctx context.Context, rawURL string) string {
					t, err := enricher.PageTitle(ctx, rawURL)
					if err != nil {
						return ""
					}
					return t
				}
			}
			return p.ImportAll(ctx, db, hub, urls)
		},
	}

	mux := httpapi.NewMux(deps)

	// Shutdown endpoint guarded by a one-shot token printed at startup.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}

	port := cfg.App.Port
	if port == 0 {
		port = 38471
	}
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)
	log.Printf("shutdown token: %s", token)
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
