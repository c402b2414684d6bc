package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdidash/internal/indicators"
	"hdidash/internal/snapshot"
)

func testdataPath() string {
	return filepath.Join("..", "..", "testdata")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportWritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "export", "--data-dir", testdataPath(), "--out-dir", dir, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Rows read: 17")
	assert.Contains(t, out, "Rows written (cleaned): 14")

	b, err := os.ReadFile(filepath.Join(dir, "hdi_cleaned.csv"))
	require.NoError(t, err)
	assert.Equal(t, 15, len(strings.Split(strings.TrimSpace(string(b)), "\n")))

	profile, err := os.ReadFile(filepath.Join(dir, "hdi_profile.md"))
	require.NoError(t, err)
	assert.Contains(t, string(profile), "# HDI composite indices cleaning report")

	ds, err := snapshot.Load(context.Background(), filepath.Join(dir, "hdi_cleaned.sqlite"))
	require.NoError(t, err)
	assert.Equal(t, 14, ds.Len())
}

func TestExportMissingInputFails(t *testing.T) {
	_, err := execute(t, "export", "--data-dir", t.TempDir(), "--out-dir", t.TempDir(), "--log-level", "error")
	require.ErrorIs(t, err, indicators.ErrMissingFile)
}

func TestServeFailsFastOnMissingData(t *testing.T) {
	_, err := execute(t, "serve", "--data-dir", t.TempDir(), "--port", "18744", "--log-level", "error")
	require.ErrorIs(t, err, indicators.ErrMissingFile)
}

func TestServeFailsFastOnBadSnapshot(t *testing.T) {
	_, err := execute(t, "serve", "--snapshot", filepath.Join(t.TempDir(), "absent.sqlite"), "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load snapshot")
}

func TestBadEnvConfig(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := execute(t, "serve", "--data-dir", testdataPath())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "export", "--log-level", "chatty", "--out-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}
