// FILE: src/internal/sink/registry.go
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lixenwraith/log"
)

// Registry maps a host identifier to its sink. Each host gets exactly
// one sink, created on first use and reused for the process lifetime.
type Registry struct {
	dir         string
	maxBytes    int64
	backupCount int64
	logger      *log.Logger

	mu    sync.Mutex
	sinks map[string]*FileSink
}

// NewRegistry creates the log directory if needed and returns an empty
// registry rooted there.
func NewRegistry(dir string, maxBytes, backupCount int64, logger *log.Logger) (*Registry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log folder: %w", err)
	}

	return &Registry{
		dir:         dir,
		maxBytes:    maxBytes,
		backupCount: backupCount,
		logger:      logger,
		sinks:       make(map[string]*FileSink),
	}, nil
}

// Get returns the sink for host, creating it on first use. The
// lookup-or-insert is atomic so concurrent callers for the same host
// always share one sink.
func (r *Registry) Get(host string) (*FileSink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sinks[host]; ok {
		return s, nil
	}

	s, err := NewFileSink(filepath.Join(r.dir, host), r.maxBytes, r.backupCount)
	if err != nil {
		return nil, fmt.Errorf("sink for host %q: %w", host, err)
	}
	r.sinks[host] = s

	r.logger.Debug("msg", "Host sink created",
		"component", "sink_registry",
		"host", host,
		"path", s.Path())
	return s, nil
}

// Hosts returns the identifiers with an open sink.
func (r *Registry) Hosts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	hosts := make([]string, 0, len(r.sinks))
	for host := range r.sinks {
		hosts = append(hosts, host)
	}
	return hosts
}

// Close closes every sink. Safe to call once at shutdown.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for host, s := range r.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sink for host %q: %w", host, err))
		}
	}
	r.sinks = make(map[string]*FileSink)
	return errors.Join(errs...)
}
