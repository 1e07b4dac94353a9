package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"

	"jobexport/internal/config"
	"jobexport/internal/events"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	Hub         *events.Hub
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	writeJSON(w, cur)
}

func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()

	var incoming config.Config
	if err := dec.Decode(&incoming); err != nil {
		WriteError(w, r, CodeInvalidJSON, err.Error())
		return
	}
	if dec.More() {
		WriteError(w, r, CodeInvalidJSON, "trailing data")
		return
	}

	normalized, vr := config.NormalizeAndValidate(incoming)
	if !vr.OK() {
		// structured so the caller can show each problem
		WriteJSON(w, http.StatusBadRequest, vr)
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, CodeSaveFailed, err.Error())
		return
	}

	saved, err := h.reload()
	if err != nil {
		WriteError(w, r, CodeReloadFailed, "saved but reload failed: "+err.Error())
		return
	}
	h.CfgVal.Store(saved)
	if h.Hub != nil {
		h.Hub.Publish(events.Encode(RequestIDFrom(r.Context()), events.TypeConfigSaved, nil))
	}
	writeJSON(w, saved)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.UserCfgPath)
	writeJSON(w, map[string]any{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	_, vr := config.NormalizeAndValidate(cur)
	writeJSON(w, vr)
}

// reload reads the saved file back (env overrides included) and puts it
// through the same normalization the CLI applies at startup.
func (h ConfigHandler) reload() (config.Config, error) {
	cfg, err := h.LoadCfg()
	if err != nil {
		return config.Config{}, err
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		return config.Config{}, errors.New(strings.Join(vr.Errors, "; "))
	}
	return cfg, nil
}
