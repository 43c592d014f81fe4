package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyOverridesDefaults(t *testing.T) {
	cfg := Default()

	err := cfg.apply(map[string]string{
		"POC_ACCOUNT_ID":  "12345",
		"POC_PLOT_DIR":    "/mnt/plots",
		"POC_ENGINE":      "width-8 (256-bit)",
		"POC_STATUS_PORT": "9090",
	})
	require.NoError(t, err)

	require.Equal(t, uint64(12345), cfg.AccountID)
	require.Equal(t, "/mnt/plots", cfg.PlotDir)
	require.Equal(t, "width-8 (256-bit)", cfg.PreferredEngine)
	require.Equal(t, 9090, cfg.StatusPort)
}

func TestApplyRejectsMalformedValues(t *testing.T) {
	require.Error(t, Default().apply(map[string]string{"POC_ACCOUNT_ID": "not-a-number"}))
	require.Error(t, Default().apply(map[string]string{"POC_STATUS_PORT": "also-not"}))
	require.Error(t, Default().apply(map[string]string{"POC_STATUS_PORT": "70000"}))
}

func TestApplyIgnoresUnknownKeys(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.apply(map[string]string{"SOME_DEPLOY_VAR": "whatever"}))
	require.Equal(t, Default(), cfg)
}

func TestReadEnvFileShellCompatibleSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poc.env")
	require.NoError(t, os.WriteFile(path, []byte(`
# mining account
export POC_ACCOUNT_ID=42
POC_PLOT_DIR="/var/lib/plots"
POC_ENGINE='scalar'
not-a-kv-line
`), 0o644))

	values, err := readEnvFile(path)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"POC_ACCOUNT_ID": "42",
		"POC_PLOT_DIR":   "/var/lib/plots",
		"POC_ENGINE":     "scalar",
	}, values)
}

func TestLoadLayersFileUnderEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poc.env")
	require.NoError(t, os.WriteFile(path, []byte("POC_ACCOUNT_ID=7\nPOC_STATUS_PORT=9000\n"), 0o644))

	t.Setenv("POC_CONFIG", path)
	t.Setenv("POC_STATUS_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, uint64(7), cfg.AccountID, "file layer applies where the environment is silent")
	require.Equal(t, 9999, cfg.StatusPort, "environment wins over the file layer")
	require.Equal(t, "./plots", cfg.PlotDir, "untouched settings keep their defaults")
}

func TestLoadRejectsMissingExplicitConfig(t *testing.T) {
	t.Setenv("POC_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.env"))
	_, err := Load()
	require.Error(t, err, "a POC_CONFIG path that cannot be read is an error, not a silent fallback")
}
