// FILE: src/internal/router/event.go
package router

import (
	"fmt"

	"hostlog/src/internal/payload"
)

// EventKind identifies a recognized engine lifecycle event.
type EventKind uint8

const (
	EventRunnerOK EventKind = iota
	EventRunnerFailed
	EventRunnerSkipped
	EventRunnerUnreachable
	EventRunnerAsyncFailed
	EventImportForHost
	EventNotImportForHost
	EventPlaybookStart
)

// Severity of a lifecycle event, recorded alongside the category.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is one engine callback: consumed immediately, never retained.
type Event struct {
	Kind       EventKind
	Host       string
	TaskName   string
	TaskAction string
	Playbook   string // playbook-start events only
	Result     payload.Value
}

type routing struct {
	Category string
	Severity Severity
}

// Static event-to-line classification. PlaybookStart produces no line
// and is handled before the table lookup.
var routingTable = map[EventKind]routing{
	EventRunnerOK:          {Category: "OK", Severity: SeverityInfo},
	EventRunnerFailed:      {Category: "FAILED", Severity: SeverityError},
	EventRunnerSkipped:     {Category: "SKIPPED", Severity: SeverityInfo},
	EventRunnerUnreachable: {Category: "UNREACHABLE", Severity: SeverityWarning},
	EventRunnerAsyncFailed: {Category: "ASYNC_FAILED", Severity: SeverityError},
	EventImportForHost:     {Category: "IMPORTED", Severity: SeverityInfo},
	EventNotImportForHost:  {Category: "NOTIMPORTED", Severity: SeverityInfo},
}

var eventNames = map[string]EventKind{
	"runner_on_ok":                    EventRunnerOK,
	"runner_on_failed":                EventRunnerFailed,
	"runner_on_skipped":               EventRunnerSkipped,
	"runner_on_unreachable":           EventRunnerUnreachable,
	"runner_on_async_failed":          EventRunnerAsyncFailed,
	"playbook_on_import_for_host":     EventImportForHost,
	"playbook_on_not_import_for_host": EventNotImportForHost,
	"playbook_on_start":               EventPlaybookStart,
}

// ParseEventKind maps a wire event name to its kind.
func ParseEventKind(name string) (EventKind, error) {
	kind, ok := eventNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown event name: %q", name)
	}
	return kind, nil
}

// Classify returns the (category, severity) pair for a kind. The
// playbook-start kind and unknown kinds produce no classification.
func Classify(kind EventKind) (string, Severity, bool) {
	route, ok := routingTable[kind]
	if !ok {
		return "", 0, false
	}
	return route.Category, route.Severity, true
}
