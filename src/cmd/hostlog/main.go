// FILE: src/cmd/hostlog/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"hostlog/src/internal/config"
	"hostlog/src/internal/source"
	"hostlog/src/internal/version"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

var logger *log.Logger

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if *configFile != "" {
		os.Setenv("HOSTLOG_CONFIG_FILE", *configFile)
	}

	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// CLI logging flags override config
	if *logOutput != "" {
		cfg.Logging.Output = *logOutput
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := initializeLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer shutdownLogger()

	input, err := openInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if closer, ok := input.(io.Closer); ok && input != os.Stdin {
		defer closer.Close()
	}

	rt, registry, err := bootstrapRouter(cfg)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap pipeline", "error", err)
		shutdownLogger()
		os.Exit(1)
	}
	defer registry.Close()

	logger.Info("msg", "Hostlog starting",
		"version", version.Short(),
		"log_folder", cfg.Callback.LogFolder,
		"max_bytes", cfg.Callback.MaxBytes,
		"backup_count", cfg.Callback.BackupCount)

	feed := source.NewFeed(input, rt, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- feed.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("msg", "Termination signal received", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("msg", "Event feed failed", "error", err)
			registry.Close()
			shutdownLogger()
			os.Exit(1)
		}
		stats := feed.GetStats()
		logger.Info("msg", "Event stream finished",
			"total", stats.TotalEvents,
			"dropped", stats.DroppedEvents,
			"failed", stats.FailedEvents)
	}
}

// openInput resolves the event stream: the -input file when given,
// stdin otherwise. Reading events from an interactive terminal is
// almost certainly a mistake, so it is refused.
func openInput() (io.Reader, error) {
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			return nil, fmt.Errorf("open event input: %w", err)
		}
		return f, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is a terminal: pipe engine events in or use -input (see -h)")
	}
	return os.Stdin, nil
}
