package httpapi

type ImportStatus struct {
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastFetched int    `json:"last_fetched"`
	LastAdded   int    `json:"last_added"`
	LastPending int    `json:"last_pending"`
	LastSkipped int    `json:"last_skipped"`
	Running     bool   `json:"running"`
}
