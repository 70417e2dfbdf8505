package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Public board
	hh := HealthHandler{DB: d.DB}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	jh := JobsHandler{DB: d.DB}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Admin surface, behind the shared key
	admin := RequireAdmin(d.CfgVal)

	ah := AdminHandler{DB: d.DB, Hub: d.Hub, CfgVal: d.CfgVal}
	mux.Handle("/admin/pending", admin(methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Pending,
	})))
	mux.Handle("/admin/rejected", admin(methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Rejected,
	})))
	mux.Handle("/admin/jobs/", admin(http.HandlerFunc(ah.JobAction)))

	ih := ImportHandler{
		DB:           d.DB,
		CfgVal:       d.CfgVal,
		ImportStatus: d.ImportStatus,
		FetchURLs:    d.FetchURLs,
		RunImport:    d.RunImport,
	}
	mux.Handle("/admin/import/run", admin(methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Run,
	})))
	mux.Handle("/admin/import/status", admin(methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.Status,
	})))

	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.Handle("/admin/config", admin(methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	})))
	mux.Handle("/admin/config/path", admin(methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	})))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.Handle("/admin/secrets/password", admin(methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetAdminPassword,
	})))

	return mux
}
