// FILE: src/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

type Config struct {
	Callback CallbackConfig `toml:"callback"`
	Logging  LogConfig      `toml:"logging"`
}

// CallbackConfig holds the per-host log writer options, resolved once
// per process lifetime.
type CallbackConfig struct {
	// Destination root directory for per-host log files
	LogFolder string `toml:"log_folder"`

	// Sink rollover threshold in bytes, 0 = unbounded
	MaxBytes int64 `toml:"max_bytes"`

	// Rotated-file retention count, 0 = truncate instead of rotating
	BackupCount int64 `toml:"backup_count"`

	// Go time layout used for the line timestamp
	TimeFormat string `toml:"time_format"`

	// Line template with placeholders now, playbook, task_name,
	// task_action, category, data
	MsgFormat string `toml:"msg_format"`

	// Run invocation arguments through the full renderer
	FormatInvocation bool `toml:"format_invocation"`

	// Honor the no-log marker on result payloads
	RespectNoLog bool `toml:"respect_no_log"`

	// Comma-separated mapping keys to keep when rendering, empty = all
	WhitelistDictKeys string `toml:"whitelist_dict_keys"`
}

// Whitelist parses the comma-separated key list, dropping empty items.
func (c CallbackConfig) Whitelist() []string {
	if c.WhitelistDictKeys == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(c.WhitelistDictKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// LogConfig controls the operational diagnostics logger, not the
// per-host output files.
type LogConfig struct {
	// Output mode: "stdout", "stderr", "none"
	Output string `toml:"output"`

	// Log level: "debug", "info", "warn", "error"
	Level string `toml:"level"`
}

func defaults() *Config {
	return &Config{
		Callback: CallbackConfig{
			LogFolder:        "/var/log/hostlog/hosts",
			MaxBytes:         0,
			BackupCount:      0,
			TimeFormat:       "Jan 02 2006 15:04:05",
			MsgFormat:        "{{.now}} - {{.playbook}} - {{.task_name}} - {{.task_action}} - {{.category}} - {{.data}}\n\n",
			FormatInvocation: false,
			RespectNoLog:     true,
		},
		Logging: LogConfig{
			Output: "stderr",
			Level:  "info",
		},
	}
}

// LoadWithCLI resolves the configuration from defaults, the TOML file,
// HOSTLOG_* environment variables, and CLI arguments, in ascending
// precedence. Invalid values are fatal here, before any line is
// produced.
func LoadWithCLI(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("HOSTLOG_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, validateConfig(finalConfig)
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "HOSTLOG_" + env
	return env
}

func GetConfigPath() string {
	if configFile := os.Getenv("HOSTLOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("HOSTLOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("HOSTLOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "hostlog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "hostlog.toml")
	}

	return "hostlog.toml"
}
