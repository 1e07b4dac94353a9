package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const onePage = `<ul><li class="semantic-search-results-list__list-item">
<a class="job-card-job-posting-card-wrapper__card-link" href="https://x.com/job/1">
<div class="artdeco-entity-lockup__title">Software Engineer</div>
<div class="artdeco-entity-lockup__subtitle">Acme, Inc.</div>
<div class="artdeco-entity-lockup__caption">Remote</div>
</a></li></ul>`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportCommand_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(input, []byte(onePage), 0o644))
	outDir := filepath.Join(dir, "out")

	_, err := run(t, "export", "--data-dir", dir, "--input", input, "--out", outDir, "--quiet")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outDir, "linkedin_jobs.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Title,Company,Location,Posted,Notes,Link\n"+
		`Software Engineer,"Acme, Inc.",Remote,"",,https://x.com/job/1`+"\n", string(got))
	assert.FileExists(t, filepath.Join(dir, "config.yml"))
}

func TestExportCommand_BrowserNeedsURL(t *testing.T) {
	_, err := run(t, "export", "--data-dir", t.TempDir(), "--browser")
	assert.Error(t, err)
}

func TestExportCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("app:\n  port: 0\n"), 0o644))

	_, err := run(t, "export", "--config", cfgPath, "--input", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.port")
}

func TestMergeCommand_HelpDescribesDedupe(t *testing.T) {
	out, err := run(t, "merge", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Rows with an empty Link are never treated as duplicates")
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	h := "Title,Company,Location,Posted,Notes,Link\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(h+"A,Co,,,,https://x.com/1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte(h+"A,Co,,,,https://x.com/1\nB,Co,,,,https://x.com/2\n"), 0o644))

	out, err := run(t, "merge", "--data-dir", t.TempDir(), "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "merged 2 files: 3 rows, 1 duplicates removed, 2 unique")
	assert.FileExists(t, filepath.Join(dir, "MERGED_jobs.csv"))
}
