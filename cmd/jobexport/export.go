package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"jobexport/internal/config"
	"jobexport/internal/export"
	"jobexport/internal/scrape/linkedin"
	"jobexport/internal/source"
)

type exportOpts struct {
	input   string
	url     string
	browser bool
	out     string
	quiet   bool
}

func newExportCmd(root *rootOpts) *cobra.Command {
	o := &exportOpts{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Extract job cards from one search-results page and save linkedin_jobs.csv",
		Example: `  jobexport export --input search.html --url "https://www.linkedin.com/jobs/search/?keywords=go"
  pbpaste | jobexport export
  jobexport export --browser --url "https://www.linkedin.com/jobs/search/?keywords=go"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return runExport(cmd, cfg, o)
		},
	}
	cmd.Flags().StringVar(&o.input, "input", source.Stdin, `saved page html, or "-" for stdin`)
	cmd.Flags().StringVar(&o.url, "url", "", "address of the search page (resolves relative links; required with --browser)")
	cmd.Flags().BoolVar(&o.browser, "browser", false, "load --url in headless chromium instead of reading html")
	cmd.Flags().StringVar(&o.out, "out", "", "output directory (default export.output_dir)")
	cmd.Flags().BoolVar(&o.quiet, "quiet", false, "skip the table dump")
	return cmd
}

func runExport(cmd *cobra.Command, cfg config.Config, o *exportOpts) error {
	var src source.Source
	if o.browser {
		if o.url == "" {
			return errors.New("--browser needs --url")
		}
		src = source.NewBrowserSource(o.url, cfg)
	} else {
		src = source.NewFileSource(o.input, o.url)
	}

	page, err := src.Load(cmd.Context())
	if err != nil {
		return err
	}
	log.Printf("[export] source=%s bytes=%d url=%s", src.Name(), len(page.HTML), page.URL)

	jobs, err := linkedin.Extract(page, cfg)
	if err != nil {
		return err
	}
	log.Printf("found %d jobs", len(jobs))
	if !o.quiet {
		if err := export.PrintTable(os.Stderr, jobs); err != nil {
			log.Printf("[export] warn: table: %v", err)
		}
	}

	dir := cfg.Export.OutputDir
	if o.out != "" {
		dir = o.out
	}
	var trigger export.Trigger = export.FileTrigger{Dir: dir}
	trigger.Deliver(cmd.Context(), export.NewDownload(cfg.Export.Filename, export.Marshal(jobs, cfg.Export.BOM)))
	return nil
}
