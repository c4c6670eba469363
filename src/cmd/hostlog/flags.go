// FILE: src/cmd/hostlog/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
)

// Command-line flags
var (
	configFile  = flag.String("config", "", "Config file path")
	inputFile   = flag.String("input", "", "Event input file (default: stdin)")
	showVersion = flag.Bool("version", false, "Show version information")

	// Logging flags
	logOutput = flag.String("log-output", "", "Diagnostics output: stdout, stderr, none (overrides config)")
	logLevel  = flag.String("log-level", "", "Diagnostics level: debug, info, warn, error (overrides config)")
)

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "Hostlog - Per-Host Playbook Log Writer\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Reads engine lifecycle events as JSON lines and appends one human\n")
	fmt.Fprintf(os.Stderr, "readable log line per task result to a rotating file per host.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")

	fmt.Fprintf(os.Stderr, "\nGeneral:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -input string\n\tEvent input file (default: stdin)\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")

	fmt.Fprintf(os.Stderr, "\nLogging:\n")
	fmt.Fprintf(os.Stderr, "  -log-output string\n\tDiagnostics output: stdout, stderr, none (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tDiagnostics level: debug, info, warn, error (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Consume events from an engine pipe\n")
	fmt.Fprintf(os.Stderr, "  engine --emit-events | %s -config /etc/hostlog.toml\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Replay a recorded event file with debug diagnostics\n")
	fmt.Fprintf(os.Stderr, "  %s -input events.jsonl -log-level debug\n", os.Args[0])
}
