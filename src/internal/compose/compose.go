// FILE: src/internal/compose/compose.go
package compose

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// Composer fills the configured message template with per-event fields.
// The template is parsed once; a placeholder with no matching field is
// a configuration error, surfaced either at parse or at execute time.
type Composer struct {
	tmpl       *template.Template
	timeFormat string
}

// New parses the message template. Recognized placeholders: now,
// playbook, task_name, task_action, category, data.
func New(msgFormat, timeFormat string) (*Composer, error) {
	tmpl, err := template.New("msg").Option("missingkey=error").Parse(msgFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid message template: %w", err)
	}
	return &Composer{
		tmpl:       tmpl,
		timeFormat: timeFormat,
	}, nil
}

// Compose builds one log line. The timestamp is taken from the local
// clock at call time, never cached.
func (c *Composer) Compose(playbook, taskName, taskAction, category, data string) (string, error) {
	fields := map[string]string{
		"now":         time.Now().Format(c.timeFormat),
		"playbook":    playbook,
		"task_name":   taskName,
		"task_action": taskAction,
		"category":    category,
		"data":        data,
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, fields); err != nil {
		return "", fmt.Errorf("message template execution: %w", err)
	}
	return buf.String(), nil
}
