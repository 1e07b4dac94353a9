package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	_, res := NormalizeAndValidate(Default())
	assert.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestNormalizeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		wantOK  bool
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
			wantOK: true,
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.App.Port = 70000 },
			wantErr: "app.port must be 1..65535",
		},
		{
			name:    "missing listing selector",
			mutate:  func(c *Config) { c.Selectors.Listing = " " },
			wantErr: "selectors.listing is required",
		},
		{
			name:    "unparseable selector",
			mutate:  func(c *Config) { c.Selectors.Title = "div[" },
			wantErr: "selectors.title is not a valid CSS selector",
		},
		{
			name:    "filename with directory",
			mutate:  func(c *Config) { c.Export.Filename = "out/jobs.csv" },
			wantErr: "export.filename must be a bare file name",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Page.BaseURL = "/jobs" },
			wantErr: "page.base_url must be an absolute URL",
		},
		{
			name:    "zero browser timeout",
			mutate:  func(c *Config) { c.Browser.TimeoutSeconds = 0 },
			wantErr: "browser.timeout_seconds must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			_, res := NormalizeAndValidate(cfg)
			if tt.wantOK {
				assert.True(t, res.OK(), "errors: %v", res.Errors)
				return
			}
			require.False(t, res.OK())
			found := false
			for _, e := range res.Errors {
				if strings.HasPrefix(e, tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "want %q in %v", tt.wantErr, res.Errors)
		})
	}
}

func TestNormalizeDedupesPhrases(t *testing.T) {
	cfg := Default()
	cfg.Filters.ConnectionPhrases = []string{" work here", "work here", "", "Work Here"}
	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	assert.Equal(t, []string{"work here", "Work Here"}, out.Filters.ConnectionPhrases)
}

func TestEmptyOptionalSelectorWarns(t *testing.T) {
	cfg := Default()
	cfg.Selectors.Insight = ""
	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	assert.Len(t, res.Warnings, 1)
}

func TestEnsureUserConfigAndLoad(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Selectors, cfg.Selectors)
	assert.Equal(t, DefaultFilename, cfg.Export.Filename)

	// second call keeps the existing file
	require.NoError(t, os.WriteFile(path, []byte("export:\n  filename: other.csv\n"), 0o644))
	again, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.csv", cfg.Export.Filename)
	// unspecified sections fall back to defaults
	assert.Equal(t, DefaultSelectors(), cfg.Selectors)
}

func TestLoadAppliesEnv(t *testing.T) {
	dir := t.TempDir()
	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)

	t.Setenv("JOBEXPORT_OUTPUT_DIR", "/tmp/exports")
	t.Setenv("JOBEXPORT_PORT", "40000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/exports", cfg.Export.OutputDir)
	assert.Equal(t, 40000, cfg.App.Port)
}

func TestSaveAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := Default()
	require.NoError(t, SaveAtomic(path, cfg))

	cfg.Export.Filename = "second.csv"
	require.NoError(t, SaveAtomic(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "second.csv", loaded.Export.Filename)

	bak, err := Load(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, DefaultFilename, bak.Export.Filename)

	bad := Default()
	bad.Selectors.Listing = ""
	assert.Error(t, SaveAtomic(path, bad))
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Default()
	cfg.App.AllowedOrigins = []string{" https://www.linkedin.com/ ", "https://www.linkedin.com", "http://localhost:3000"}
	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, []string{"https://www.linkedin.com", "http://localhost:3000"}, out.App.AllowedOrigins)

	cfg.App.AllowedOrigins = []string{"https://www.linkedin.com/jobs"}
	_, res = NormalizeAndValidate(cfg)
	assert.False(t, res.OK())

	cfg.App.AllowedOrigins = nil
	_, res = NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	assert.Len(t, res.Warnings, 1)
}
