package httpapi

import (
	"sync/atomic"

	"jobexport/internal/config"
	"jobexport/internal/events"
)

type Deps struct {
	Hub *events.Hub

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config
	Status *atomic.Value // stores httpapi.ExportStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
