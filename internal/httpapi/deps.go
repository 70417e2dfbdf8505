package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"plugboard-engine/internal/config"
	"plugboard-engine/internal/events"
	"plugboard-engine/internal/review"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ImportStatus *atomic.Value // stores httpapi.ImportStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Import entrypoints (injected for testability)
	FetchURLs func(ctx context.Context, sources []string) []string
	RunImport func(ctx context.Context, db *sql.DB, cfg config.Config, urls []string) review.Summary
}
