package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jobexport/internal/config"
)

type rootOpts struct {
	dataDir string
	cfgPath string
}

func main() {
	// .env is optional; real env vars win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[env] warn: .env not loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "jobexport",
		Short:        "Export LinkedIn job search results to CSV",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding config.yml (default $JOBEXPORT_DATA_DIR or .)")
	root.PersistentFlags().StringVar(&opts.cfgPath, "config", "", "config file path (default <data-dir>/config.yml)")

	root.AddCommand(newExportCmd(opts), newMergeCmd(opts), newServeCmd(opts))
	return root
}

// loadConfig resolves the config file, creating it on first run, and refuses
// to continue when it does not validate.
func (o *rootOpts) loadConfig() (config.Config, string, error) {
	path := o.cfgPath
	if path == "" {
		dataDir := o.dataDir
		if dataDir == "" {
			dataDir = os.Getenv("JOBEXPORT_DATA_DIR")
		}
		if dataDir == "" {
			dataDir = "."
		}
		p, err := config.EnsureUserConfig(dataDir)
		if err != nil {
			return config.Config{}, "", err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, path, err
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("[config] warn: %s", w)
	}
	if !vr.OK() {
		return config.Config{}, path, config.Validate(cfg)
	}
	return cfg, path, nil
}
