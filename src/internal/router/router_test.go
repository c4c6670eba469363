// FILE: src/internal/router/router_test.go
package router

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hostlog/src/internal/compose"
	"hostlog/src/internal/filter"
	"hostlog/src/internal/payload"
	"hostlog/src/internal/sink"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplate = "{{.playbook}} - {{.task_name}} - {{.task_action}} - {{.category}} - {{.data}}\n"

func newTestRouter(t *testing.T, opts filter.Options) (*Router, string) {
	t.Helper()
	logger := log.NewLogger()
	dir := t.TempDir()

	registry, err := sink.NewRegistry(dir, 0, 0, logger)
	require.NoError(t, err)
	t.Cleanup(func() { registry.Close() })

	composer, err := compose.New(testTemplate, "15:04:05")
	require.NoError(t, err)

	return New(filter.New(opts, logger), composer, registry, logger), dir
}

func readHostLog(t *testing.T, dir, host string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, host))
	require.NoError(t, err)
	return string(data)
}

func TestRoutingTable(t *testing.T) {
	testCases := []struct {
		name     string
		kind     EventKind
		category string
		severity Severity
	}{
		{"RunnerOK", EventRunnerOK, "OK", SeverityInfo},
		{"RunnerFailed", EventRunnerFailed, "FAILED", SeverityError},
		{"RunnerSkipped", EventRunnerSkipped, "SKIPPED", SeverityInfo},
		{"RunnerUnreachable", EventRunnerUnreachable, "UNREACHABLE", SeverityWarning},
		{"RunnerAsyncFailed", EventRunnerAsyncFailed, "ASYNC_FAILED", SeverityError},
		{"ImportForHost", EventImportForHost, "IMPORTED", SeverityInfo},
		{"NotImportForHost", EventNotImportForHost, "NOTIMPORTED", SeverityInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			category, severity, ok := Classify(tc.kind)
			require.True(t, ok)
			assert.Equal(t, tc.category, category)
			assert.Equal(t, tc.severity, severity)
		})
	}

	t.Run("PlaybookStartProducesNoLine", func(t *testing.T) {
		_, _, ok := Classify(EventPlaybookStart)
		assert.False(t, ok)
	})
}

func TestParseEventKind(t *testing.T) {
	wireNames := map[string]EventKind{
		"runner_on_ok":                    EventRunnerOK,
		"runner_on_failed":                EventRunnerFailed,
		"runner_on_skipped":               EventRunnerSkipped,
		"runner_on_unreachable":           EventRunnerUnreachable,
		"runner_on_async_failed":          EventRunnerAsyncFailed,
		"playbook_on_import_for_host":     EventImportForHost,
		"playbook_on_not_import_for_host": EventNotImportForHost,
		"playbook_on_start":               EventPlaybookStart,
	}

	for name, expected := range wireNames {
		kind, err := ParseEventKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, kind, name)
	}

	_, err := ParseEventKind("runner_on_retry")
	assert.Error(t, err)
}

func TestRouter_Handle(t *testing.T) {
	result := payload.Map(map[string]payload.Value{"rc": payload.Int(0)})

	t.Run("WritesComposedLine", func(t *testing.T) {
		rt, dir := newTestRouter(t, filter.Options{})

		require.NoError(t, rt.Handle(Event{Kind: EventPlaybookStart, Playbook: "site.yml"}))
		require.NoError(t, rt.Handle(Event{
			Kind:       EventRunnerOK,
			Host:       "web1",
			TaskName:   "ping hosts",
			TaskAction: "ping",
			Result:     result,
		}))

		line := readHostLog(t, dir, "web1")
		assert.Contains(t, line, "site.yml - ping hosts - ping - OK - ")
		assert.Contains(t, line, `"rc": 0`)
	})

	t.Run("PlaybookNamePersistsAcrossEvents", func(t *testing.T) {
		rt, dir := newTestRouter(t, filter.Options{})

		require.NoError(t, rt.Handle(Event{Kind: EventPlaybookStart, Playbook: "first.yml"}))
		require.NoError(t, rt.Handle(Event{Kind: EventRunnerOK, Host: "web1", TaskName: "t1", TaskAction: "ping", Result: result}))
		require.NoError(t, rt.Handle(Event{Kind: EventPlaybookStart, Playbook: "second.yml"}))
		require.NoError(t, rt.Handle(Event{Kind: EventRunnerFailed, Host: "web1", TaskName: "t2", TaskAction: "ping", Result: result}))

		content := readHostLog(t, dir, "web1")
		lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "first.yml - t1"))
		assert.True(t, strings.HasPrefix(lines[1], "second.yml - t2"))
		assert.Equal(t, "second.yml", rt.Playbook())
	})

	t.Run("NoLogSuppressesLine", func(t *testing.T) {
		rt, dir := newTestRouter(t, filter.Options{RespectNoLog: true})

		require.NoError(t, rt.Handle(Event{
			Kind:     EventRunnerOK,
			Host:     "web1",
			TaskName: "secret task",
			Result: payload.Map(map[string]payload.Value{
				payload.NoLogKey: payload.Bool(true),
				"stdout":         payload.String("secret"),
			}),
		}))

		_, err := os.Stat(filepath.Join(dir, "web1"))
		assert.True(t, os.IsNotExist(err), "no sink should be created for a suppressed result")
	})

	t.Run("VerboseOverrideRedactsBody", func(t *testing.T) {
		rt, dir := newTestRouter(t, filter.Options{})

		require.NoError(t, rt.Handle(Event{
			Kind:       EventRunnerOK,
			Host:       "web1",
			TaskName:   "verbose task",
			TaskAction: "debug",
			Result: payload.Map(map[string]payload.Value{
				payload.VerboseOverrideKey: payload.Bool(true),
				"stdout":                   payload.String("lots of data"),
			}),
		}))

		line := readHostLog(t, dir, "web1")
		assert.True(t, strings.HasSuffix(strings.TrimRight(line, "\n"), "OK - omitted"))
		assert.NotContains(t, line, "lots of data")
	})

	t.Run("MalformedPayloadFallsBack", func(t *testing.T) {
		rt, dir := newTestRouter(t, filter.Options{})

		err := rt.Handle(Event{
			Kind:       EventRunnerFailed,
			Host:       "web1",
			TaskName:   "loop task",
			TaskAction: "command",
			Result:     payload.List(),
		})
		require.NoError(t, err)

		// The event is not lost: a fallback line is written
		line := readHostLog(t, dir, "web1")
		assert.Contains(t, line, "loop task - command - FAILED - ")
	})

	t.Run("PerHostIsolation", func(t *testing.T) {
		rt, dir := newTestRouter(t, filter.Options{})

		require.NoError(t, rt.Handle(Event{Kind: EventRunnerOK, Host: "web1", TaskName: "t", TaskAction: "ping", Result: result}))
		require.NoError(t, rt.Handle(Event{Kind: EventRunnerUnreachable, Host: "db1", TaskName: "t", TaskAction: "ping", Result: result}))

		assert.Contains(t, readHostLog(t, dir, "web1"), "OK")
		assert.Contains(t, readHostLog(t, dir, "db1"), "UNREACHABLE")
	})

	t.Run("UnknownKindRejected", func(t *testing.T) {
		rt, _ := newTestRouter(t, filter.Options{})

		err := rt.Handle(Event{Kind: EventKind(200), Host: "web1", Result: result})
		assert.Error(t, err)
	})
}
