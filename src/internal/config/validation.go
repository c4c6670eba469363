// FILE: src/internal/config/validation.go
package config

import (
	"fmt"
	"text/template"
)

// validateConfig is the centralized validator for the entire
// configuration. All failures here are fatal at load time.
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateCallbackConfig(&cfg.Callback); err != nil {
		return fmt.Errorf("callback config: %w", err)
	}

	if err := validateLogConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func validateCallbackConfig(cfg *CallbackConfig) error {
	if cfg.LogFolder == "" {
		return fmt.Errorf("log_folder must not be empty")
	}

	if cfg.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must not be negative: %d", cfg.MaxBytes)
	}

	if cfg.BackupCount < 0 {
		return fmt.Errorf("backup_count must not be negative: %d", cfg.BackupCount)
	}

	if cfg.TimeFormat == "" {
		return fmt.Errorf("time_format must not be empty")
	}

	if cfg.MsgFormat == "" {
		return fmt.Errorf("msg_format must not be empty")
	}
	if _, err := template.New("msg").Option("missingkey=error").Parse(cfg.MsgFormat); err != nil {
		return fmt.Errorf("msg_format is not a valid template: %w", err)
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"stdout": true, "stderr": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	return nil
}
