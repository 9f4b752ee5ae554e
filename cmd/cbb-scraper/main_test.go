package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savedRatingsPage = `<html><body><div id="all_ratings"><!--
<table id="ratings"><tbody>
<tr><th data-stat="rk">1</th><td data-stat="school_name">Duke</td><td data-stat="conf_abbr">ACC</td><td data-stat="srs">29.30</td></tr>
<tr class="thead"><th data-stat="rk">Rk</th><td data-stat="school_name">School</td></tr>
<tr><th data-stat="rk">2</th><td data-stat="school_name">Texas A&amp;M</td><td data-stat="conf_abbr">SEC</td><td data-stat="srs">18.90</td></tr>
</tbody></table>
--></div></body></html>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cbb-scraper version dev\n", out)
}

func TestRatingsFromFileDryRun(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")
	csvDir := t.TempDir()
	t.Setenv("SCRAPE_CSV_DIR", csvDir)

	path := filepath.Join(t.TempDir(), "2026-ratings.html")
	require.NoError(t, os.WriteFile(path, []byte(savedRatingsPage), 0o644))

	out, err := execute(t, "ratings", "--from-file", path, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "SCRAPE_TEAMS=duke,texas-am")
	assert.Contains(t, out, "RATINGS RUN SUMMARY")
	assert.FileExists(t, filepath.Join(csvDir, "ratings.csv"))
}

func TestRatingsFromFile_MissingTable(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "empty.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><body></body></html>`), 0o644))

	_, err := execute(t, "ratings", "--from-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locate ratings table")
}

func TestMigrateDown_InvalidSteps(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "migrate", "down", "zero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid steps")
}

func TestMigrate_SQLite(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "march-madness.db"))
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "migrate", "up")
	require.NoError(t, err)

	out, err := execute(t, "migrate", "version")
	require.NoError(t, err)
	assert.Equal(t, "version: 1\ndirty: false\n", out)
}
