package httpapi

// ExportStatus describes the most recent export served over HTTP.
type ExportStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastURL   string `json:"last_url"`
	LastJobs  int    `json:"last_jobs"`
	LastError string `json:"last_error"`
	Exports   int    `json:"exports"`
}
