// FILE: src/internal/router/router.go
package router

import (
	"fmt"
	"sync"

	"hostlog/src/internal/compose"
	"hostlog/src/internal/filter"
	"hostlog/src/internal/sink"

	"github.com/lixenwraith/log"
)

// Router drives the full per-event pipeline: suppress, render, compose,
// append to the host sink. It also tracks the current playbook name,
// updated by playbook-start events and embedded in every line composed
// until the next one.
type Router struct {
	redactor *filter.Redactor
	composer *compose.Composer
	registry *sink.Registry
	logger   *log.Logger

	mu       sync.Mutex
	playbook string
}

// New creates a router over an already constructed pipeline.
func New(redactor *filter.Redactor, composer *compose.Composer, registry *sink.Registry, logger *log.Logger) *Router {
	return &Router{
		redactor: redactor,
		composer: composer,
		registry: registry,
		logger:   logger,
	}
}

// Playbook returns the current playbook name.
func (rt *Router) Playbook() string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.playbook
}

// Handle processes one engine event. Failures are isolated to the
// event: a malformed payload still produces a fallback line, and a
// sink write error for one host never blocks others.
func (rt *Router) Handle(ev Event) error {
	if ev.Kind == EventPlaybookStart {
		rt.mu.Lock()
		rt.playbook = ev.Playbook
		rt.mu.Unlock()
		rt.logger.Debug("msg", "Playbook started",
			"component", "router",
			"playbook", ev.Playbook)
		return nil
	}

	route, ok := routingTable[ev.Kind]
	if !ok {
		return fmt.Errorf("unroutable event kind %d", ev.Kind)
	}

	if rt.redactor.Suppressed(ev.Result) {
		rt.logger.Debug("msg", "Result suppressed by no-log marker",
			"component", "router",
			"host", ev.Host,
			"task", ev.TaskName)
		return nil
	}

	body, err := rt.redactor.Body(ev.Result)
	if err != nil {
		// Body degraded to a raw conversion, the event is still logged
		rt.logger.Warn("msg", "Malformed result payload, using fallback text",
			"component", "router",
			"host", ev.Host,
			"task", ev.TaskName,
			"error", err)
	}

	line, err := rt.composer.Compose(rt.Playbook(), ev.TaskName, ev.TaskAction, route.Category, body)
	if err != nil {
		return fmt.Errorf("compose line for host %q: %w", ev.Host, err)
	}

	s, err := rt.registry.Get(ev.Host)
	if err != nil {
		rt.logger.Error("msg", "Failed to resolve host sink",
			"component", "router",
			"host", ev.Host,
			"error", err)
		return err
	}

	if _, err := s.Write([]byte(line)); err != nil {
		rt.logger.Error("msg", "Failed to append log line",
			"component", "router",
			"host", ev.Host,
			"severity", route.Severity.String(),
			"error", err)
		return err
	}
	return nil
}
