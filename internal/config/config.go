// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selectors locate a listing card and its fields. They are plain CSS
// selectors and break whenever LinkedIn reshuffles its markup.
type Selectors struct {
	Listing    string `yaml:"listing" json:"listing"`
	Title      string `yaml:"title" json:"title"`
	Company    string `yaml:"company" json:"company"`
	Location   string `yaml:"location" json:"location"`
	Posted     string `yaml:"posted" json:"posted"`
	Link       string `yaml:"link" json:"link"`
	FooterItem string `yaml:"footer_item" json:"footer_item"`
	Insight    string `yaml:"insight" json:"insight"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`

		// pages allowed to call the local server from a browser tab
		AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	} `yaml:"app" json:"app"`

	Page struct {
		BaseURL string `yaml:"base_url" json:"base_url"`
	} `yaml:"page" json:"page"`

	Selectors Selectors `yaml:"selectors" json:"selectors"`

	Filters struct {
		// insight text containing any of these is a social annotation, not a note
		ConnectionPhrases []string `yaml:"connection_phrases" json:"connection_phrases"`
	} `yaml:"filters" json:"filters"`

	Export struct {
		Filename  string `yaml:"filename" json:"filename"`
		OutputDir string `yaml:"output_dir" json:"output_dir"`
		BOM       bool   `yaml:"bom" json:"bom"`
	} `yaml:"export" json:"export"`

	Browser struct {
		Headless       bool   `yaml:"headless" json:"headless"`
		CookiesPath    string `yaml:"cookies_path" json:"cookies_path"`
		TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	} `yaml:"browser" json:"browser"`

	Merge struct {
		InputDir   string `yaml:"input_dir" json:"input_dir"`
		OutputFile string `yaml:"output_file" json:"output_file"`
	} `yaml:"merge" json:"merge"`
}

const (
	DefaultFilename = "linkedin_jobs.csv"
	DefaultPort     = 38472
	DefaultOrigin   = "https://www.linkedin.com"
)

func DefaultSelectors() Selectors {
	return Selectors{
		Listing:    "li.semantic-search-results-list__list-item",
		Title:      "div.artdeco-entity-lockup__title",
		Company:    "div.artdeco-entity-lockup__subtitle",
		Location:   "div.artdeco-entity-lockup__caption",
		Posted:     "time",
		Link:       "a.job-card-job-posting-card-wrapper__card-link",
		FooterItem: ".job-card-job-posting-card-wrapper__footer-item",
		Insight:    ".job-card-job-posting-card-wrapper__job-insight-text",
	}
}

func Default() Config {
	var cfg Config
	cfg.App.Port = DefaultPort
	cfg.App.DataDir = "."
	cfg.App.AllowedOrigins = []string{DefaultOrigin}
	cfg.Page.BaseURL = "https://www.linkedin.com/"
	cfg.Selectors = DefaultSelectors()
	cfg.Filters.ConnectionPhrases = []string{"work here", "works here"}
	cfg.Export.Filename = DefaultFilename
	cfg.Export.OutputDir = "."
	cfg.Browser.Headless = true
	cfg.Browser.TimeoutSeconds = 30
	cfg.Merge.InputDir = "."
	cfg.Merge.OutputFile = "MERGED_jobs.csv"
	return cfg
}

// Load reads the YAML file at path on top of Default(), then applies env overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overrides file values with JOBEXPORT_* variables when set.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("JOBEXPORT_OUTPUT_DIR")); v != "" {
		cfg.Export.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv("JOBEXPORT_COOKIES_PATH")); v != "" {
		cfg.Browser.CookiesPath = v
	}
	if v := strings.TrimSpace(os.Getenv("JOBEXPORT_PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
}
