package main

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/twml"
	"github.com/yacobolo/twml/internal/watch"
)

const (
	defaultConfigFile = ".twml.yaml"
	envPrefix         = "TWML_"
	defaultAddr       = "127.0.0.1:8080"
)

var k = koanf.New(".")

// Keys holding comma-separated lists when set through the environment.
var listKeys = map[string]bool{"include": true, "exclude": true, "tokens": true}

// Config sections; TWML_SERVE_LIVE_RELOAD becomes serve.live-reload.
var sections = map[string]bool{"serve": true, "lint": true}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags set on the command line are loaded, so a flag default
	// never shadows the same setting from the file or the environment.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return errors.Wrap(err, "loading command flags")
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "loading config file %s", configPath),
				"check the YAML syntax or regenerate the file with: twml init --force")
		}
	}

	// 2. Environment variables (TWML_* prefix)
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return errors.Wrap(err, "loading environment variables")
	}

	return nil
}

// envKey maps an environment variable to its config key:
//
//	TWML_ROOT                  -> root
//	TWML_SERVE_ADDR            -> serve.addr
//	TWML_LINT_MAX_SAME_ISSUES  -> lint.max-same-issues
//	TWML_INCLUDE=a.html,b.html -> include: [a.html b.html]
func envKey(name, value string) (string, interface{}) {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))

	if section, rest, ok := strings.Cut(key, "_"); ok && sections[section] {
		key = section + "." + strings.ReplaceAll(rest, "_", "-")
	} else {
		key = strings.ReplaceAll(key, "_", "-")
	}

	if listKeys[key] {
		return key, splitList(value)
	}
	return key, value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// buildWorkspaceConfig constructs the library's Config struct from koanf state.
func buildWorkspaceConfig() twml.Config {
	config := twml.DefaultConfig()
	config.Root = getStringWithFallback("root", "root", config.Root)
	config.Prefix = getStringWithFallback("prefix", "prefix", config.Prefix)
	config.RespectGitignore = getBoolWithFallback("gitignore", "gitignore", config.RespectGitignore)

	if include := k.Strings("include"); len(include) > 0 {
		config.Include = include
	}
	if k.Exists("exclude") {
		config.Exclude = k.Strings("exclude")
	}
	if k.Exists("tokens") {
		config.Tokens = k.Strings("tokens")
	}
	return config
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig() twml.LintConfig {
	return twml.LintConfig{
		Config:             buildWorkspaceConfig(),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
}

// serveSettings are the serve command options.
type serveSettings struct {
	Addr       string
	Debounce   time.Duration
	LiveReload bool
}

func buildServeSettings() serveSettings {
	return serveSettings{
		Addr:       getStringWithFallback("addr", "serve.addr", defaultAddr),
		Debounce:   getDurationWithFallback("debounce", "serve.debounce", watch.DefaultDebounce),
		LiveReload: getBoolWithFallback("live-reload", "serve.live-reload", true),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getDurationWithFallback accepts Go duration strings ("150ms") in the file
// and environment.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}
