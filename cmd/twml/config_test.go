package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twml"
	"github.com/yacobolo/twml/internal/watch"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".twml.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
root: site
prefix: x-
verbose: true
include:
  - "pages/**/*.html"
tokens: []

serve:
  addr: 0.0.0.0:9000
  debounce: 300ms
  live-reload: false

lint:
  strict: true
  max-same-issues: 3
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))

	config := buildWorkspaceConfig()
	assert.Equal(t, "site", config.Root)
	assert.Equal(t, "x-", config.Prefix)
	assert.Equal(t, []string{"pages/**/*.html"}, config.Include)
	assert.Equal(t, []string{"node_modules/**"}, config.Exclude)
	assert.Empty(t, config.Tokens)

	serve := buildServeSettings()
	assert.Equal(t, serveSettings{Addr: "0.0.0.0:9000", Debounce: 300 * time.Millisecond, LiveReload: false}, serve)

	lint := buildLintConfig()
	assert.True(t, lint.Strict)
	assert.Equal(t, 3, lint.MaxSameIssues)
	assert.Equal(t, "x-", lint.Prefix)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// A missing config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/.twml.yaml"))

	assert.Equal(t, twml.DefaultConfig(), buildWorkspaceConfig())
	assert.Equal(t, serveSettings{Addr: defaultAddr, Debounce: watch.DefaultDebounce, LiveReload: true}, buildServeSettings())

	lint := buildLintConfig()
	assert.False(t, lint.Strict)
	assert.Equal(t, 0, lint.MaxIssuesPerLinter)
	assert.True(t, lint.PrintIssuedLines)
	assert.True(t, lint.PrintLinterName)
}

func TestInvalidConfigFileHasHint(t *testing.T) {
	resetKoanf()

	err := loadConfigFromPath(writeConfig(t, "serve: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
prefix: from-file-
serve:
  addr: from-file:1
lint:
  strict: false
`)

	t.Setenv("TWML_PREFIX", "from-env-")
	t.Setenv("TWML_SERVE_ADDR", "from-env:2")
	t.Setenv("TWML_SERVE_LIVE_RELOAD", "false")
	t.Setenv("TWML_LINT_STRICT", "true")
	t.Setenv("TWML_INCLUDE", "a.html, docs/**/*.html")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env-", buildWorkspaceConfig().Prefix)
	assert.Equal(t, []string{"a.html", "docs/**/*.html"}, buildWorkspaceConfig().Include)
	assert.Equal(t, "from-env:2", buildServeSettings().Addr)
	assert.False(t, buildServeSettings().LiveReload)
	assert.True(t, buildLintConfig().Strict)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
prefix: from-file-
serve:
  addr: from-file:1
`)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("prefix", "data-tw-", "")
	addServeFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--config", configPath, "--prefix", "from-flag-", "--debounce", "1s"}))

	require.NoError(t, loadConfig(cmd))

	assert.Equal(t, "from-flag-", buildWorkspaceConfig().Prefix)
	serve := buildServeSettings()
	assert.Equal(t, "from-file:1", serve.Addr, "unset flag defaults do not shadow the file")
	assert.Equal(t, time.Second, serve.Debounce)
	assert.True(t, serve.LiveReload)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
		key   string
		want  interface{}
	}{
		{name: "top level", env: "TWML_ROOT", value: "site", key: "root", want: "site"},
		{name: "section", env: "TWML_SERVE_ADDR", value: ":80", key: "serve.addr", want: ":80"},
		{name: "section with dashes", env: "TWML_LINT_MAX_SAME_ISSUES", value: "2", key: "lint.max-same-issues", want: "2"},
		{name: "list", env: "TWML_EXCLUDE", value: "a/**,,b/**", key: "exclude", want: []string{"a/**", "b/**"}},
		{name: "unknown section keeps dashes", env: "TWML_LIVE_RELOAD", value: "1", key: "live-reload", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value := envKey(tt.env, tt.value)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, writeDefaultConfig(fs, defaultConfigFile, false))
	data, err := afero.ReadFile(fs, defaultConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "prefix: data-tw-")
	assert.Contains(t, string(data), "serve:")
	assert.Contains(t, string(data), "lint:")

	err = writeDefaultConfig(fs, defaultConfigFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, afero.WriteFile(fs, defaultConfigFile, []byte("existing"), 0o644))
	require.NoError(t, writeDefaultConfig(fs, defaultConfigFile, true))
	data, err = afero.ReadFile(fs, defaultConfigFile)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig, string(data))
}

func TestDefaultConfigLoads(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath(writeConfig(t, defaultConfig)))
	assert.Equal(t, twml.DefaultConfig(), buildWorkspaceConfig())
	assert.Equal(t, serveSettings{Addr: defaultAddr, Debounce: watch.DefaultDebounce, LiveReload: true}, buildServeSettings())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "twml dev\n", out.String())
}

func TestGetWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
	assert.Equal(t, time.Minute, getDurationWithFallback("flag-key", "config.key", time.Minute))
}
