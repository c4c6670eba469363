// FILE: src/cmd/hostlog/bootstrap.go
package main

import (
	"fmt"
	"time"

	"hostlog/src/internal/compose"
	"hostlog/src/internal/config"
	"hostlog/src/internal/filter"
	"hostlog/src/internal/router"
	"hostlog/src/internal/sink"

	"github.com/lixenwraith/log"
)

// bootstrapRouter builds the event pipeline from configuration:
// redactor, composer, and per-host sink registry behind one router.
func bootstrapRouter(cfg *config.Config) (*router.Router, *sink.Registry, error) {
	registry, err := sink.NewRegistry(
		cfg.Callback.LogFolder,
		cfg.Callback.MaxBytes,
		cfg.Callback.BackupCount,
		logger,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("sink registry: %w", err)
	}

	composer, err := compose.New(cfg.Callback.MsgFormat, cfg.Callback.TimeFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("composer: %w", err)
	}

	redactor := filter.New(filter.Options{
		RespectNoLog:     cfg.Callback.RespectNoLog,
		FormatInvocation: cfg.Callback.FormatInvocation,
		Whitelist:        cfg.Callback.Whitelist(),
	}, logger)

	return router.New(redactor, composer, registry, logger), registry, nil
}

// initializeLogger sets up the diagnostics logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	configArgs := []string{
		fmt.Sprintf("level=%d", levelValue),
		"disable_file=true",
	}

	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "enable_console=false")
	case "stdout":
		configArgs = append(configArgs, "enable_console=true", "console_target=stdout")
	case "stderr":
		configArgs = append(configArgs, "enable_console=true", "console_target=stderr")
	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if err := logger.ApplyConfigString(configArgs...); err != nil {
		return err
	}
	return logger.Start()
}

func shutdownLogger() {
	if logger != nil {
		logger.Shutdown(2 * time.Second)
	}
}

func parseLogLevel(level string) (int, error) {
	switch level {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown level: %s", level)
	}
}
