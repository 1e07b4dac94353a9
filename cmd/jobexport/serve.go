package main

import (
	"fmt"
	"net"
	"strconv"
	"sync/atomic"

	"github.com/spf13/cobra"

	"jobexport/internal/config"
	"jobexport/internal/events"
	"jobexport/internal/httpapi"
)

func newServeCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local export endpoint a bookmarklet can post the page to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			// Keep config reloadable from PUT /config
			var cfgVal atomic.Value // stores config.Config
			cfgVal.Store(cfg)
			var status atomic.Value // stores httpapi.ExportStatus
			status.Store(httpapi.ExportStatus{})

			d := httpapi.Deps{
				Hub:         events.NewHub(),
				CfgVal:      &cfgVal,
				Status:      &status,
				UserCfgPath: path,
				LoadCfg:     func() (config.Config, error) { return config.Load(path) },
			}

			addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
			return httpapi.Serve(cmd.Context(), addr, httpapi.Handler(d))
		},
	}
}
