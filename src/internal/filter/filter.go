// FILE: src/internal/filter/filter.go
package filter

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"hostlog/src/internal/format"
	"hostlog/src/internal/payload"

	"github.com/lixenwraith/log"
)

// Placeholder written in place of a result body carrying the
// verbose-override marker.
const RedactedPlaceholder = "omitted"

// Options control suppression and body construction.
type Options struct {
	// RespectNoLog drops results whose no-log marker is set true.
	RespectNoLog bool

	// FormatInvocation runs invocation arguments through the full
	// recursive renderer instead of compact serialization.
	FormatInvocation bool

	// Whitelist restricts rendered mapping keys. Empty disables filtering.
	Whitelist []string
}

// Redactor decides whether a result is logged at all and builds the
// data segment of the line when it is.
type Redactor struct {
	opts   Options
	logger *log.Logger

	// Statistics
	totalProcessed  atomic.Uint64
	totalSuppressed atomic.Uint64
	totalRedacted   atomic.Uint64
}

// New creates a redactor from options.
func New(opts Options, logger *log.Logger) *Redactor {
	return &Redactor{
		opts:   opts,
		logger: logger,
	}
}

// Suppressed reports whether the result must not be logged at all.
// Only mapping payloads can carry the no-log marker.
func (r *Redactor) Suppressed(v payload.Value) bool {
	r.totalProcessed.Add(1)

	if !r.opts.RespectNoLog {
		return false
	}
	m := v.MapValue()
	if m == nil {
		return false
	}
	marker, ok := m[payload.NoLogKey]
	if !ok {
		return false
	}
	suppressed := marker.ScalarText() == "true"
	if suppressed {
		r.totalSuppressed.Add(1)
	}
	return suppressed
}

// Body renders the data segment of a log line. A verbose-override
// marker redacts the whole body to a placeholder. The invocation
// sub-mapping, when present, is rendered separately and prepended to
// the rest of the result. A malformed payload degrades to its raw text
// conversion; the classification error is returned alongside so the
// caller can record it, but the returned text is always usable.
func (r *Redactor) Body(v payload.Value) (string, error) {
	m := v.MapValue()
	if m == nil {
		text, err := format.Render(v, r.opts.Whitelist)
		if err != nil {
			return rawText(v), err
		}
		return text, nil
	}

	if _, ok := m[payload.VerboseOverrideKey]; ok {
		r.totalRedacted.Add(1)
		return RedactedPlaceholder, nil
	}

	rest := make(map[string]payload.Value, len(m))
	for k, elem := range m {
		if k == payload.InvocationKey {
			continue
		}
		rest[k] = elem
	}
	invocation, hasInvocation := m[payload.InvocationKey]

	body, err := format.Render(payload.Map(rest), r.opts.Whitelist)
	if err != nil {
		return rawText(payload.Map(rest)), err
	}

	if !hasInvocation {
		return body, nil
	}

	inv, err := r.renderInvocation(invocation)
	if err != nil {
		return body, err
	}
	return fmt.Sprintf("%s => %s ", inv, body), nil
}

func (r *Redactor) renderInvocation(v payload.Value) (string, error) {
	if r.opts.FormatInvocation {
		return format.Render(v, nil)
	}
	data, err := json.Marshal(v.ToAny())
	if err != nil {
		return "", fmt.Errorf("serialize invocation: %w", err)
	}
	return string(data), nil
}

// GetStats returns redactor statistics.
func (r *Redactor) GetStats() map[string]any {
	return map[string]any{
		"respect_no_log":   r.opts.RespectNoLog,
		"whitelist_keys":   len(r.opts.Whitelist),
		"total_processed":  r.totalProcessed.Load(),
		"total_suppressed": r.totalSuppressed.Load(),
		"total_redacted":   r.totalRedacted.Load(),
	}
}

func rawText(v payload.Value) string {
	return fmt.Sprint(v.ToAny())
}
