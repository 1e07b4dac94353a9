package httpapi

import (
	"net/http"

	"jobexport/internal/config"
)

// NewMux returns the raw mux; Handler wraps it with the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Export
	xh := ExportHandler{CfgVal: d.CfgVal, Status: d.Status, Hub: d.Hub}
	mux.HandleFunc("/export", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: xh.Export,
	}))
	mux.HandleFunc("/export/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.StatusGet,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

func Handler(d Deps) http.Handler {
	// read live so an edited allowlist applies without a restart
	origins := func() []string {
		return d.CfgVal.Load().(config.Config).App.AllowedOrigins
	}
	return Chain(NewMux(d), RequestID, Recover, AccessLog, Cors(origins))
}
