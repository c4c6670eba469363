// FILE: src/internal/source/feed.go
package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"hostlog/src/internal/payload"
	"hostlog/src/internal/router"

	"github.com/lixenwraith/log"
)

// Feed reads newline-delimited JSON event records from an engine and
// drives the router with them, one event at a time, in arrival order.
type Feed struct {
	reader io.Reader
	router *router.Router
	logger *log.Logger

	// Statistics
	totalEvents   atomic.Uint64
	droppedEvents atomic.Uint64
	failedEvents  atomic.Uint64
	startTime     time.Time
	lastEventTime atomic.Value // time.Time
}

// One JSON line from the engine.
type record struct {
	Event      string `json:"event"`
	Host       string `json:"host"`
	TaskName   string `json:"task_name"`
	TaskAction string `json:"task_action"`
	Playbook   string `json:"playbook"`
	Result     any    `json:"result"`
}

// FeedStats contains statistics about a feed run.
type FeedStats struct {
	TotalEvents   uint64
	DroppedEvents uint64
	FailedEvents  uint64
	StartTime     time.Time
	LastEventTime time.Time
}

// NewFeed creates a feed over r.
func NewFeed(r io.Reader, rt *router.Router, logger *log.Logger) *Feed {
	f := &Feed{
		reader:    r,
		router:    rt,
		logger:    logger,
		startTime: time.Now(),
	}
	f.lastEventTime.Store(time.Time{})
	return f
}

// Run consumes the reader until EOF. Undecodable lines and unknown
// event names are counted, logged, and skipped. Per-event handler
// failures are isolated so one bad host never stops the run.
func (f *Feed) Run() error {
	scanner := bufio.NewScanner(f.reader)
	// Result payloads can be large, well past the default line limit
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			f.droppedEvents.Add(1)
			f.logger.Warn("msg", "Dropped undecodable event line",
				"component", "feed",
				"error", err)
			continue
		}

		kind, err := router.ParseEventKind(rec.Event)
		if err != nil {
			f.droppedEvents.Add(1)
			f.logger.Warn("msg", "Dropped event with unknown name",
				"component", "feed",
				"event", rec.Event)
			continue
		}

		f.totalEvents.Add(1)
		f.lastEventTime.Store(time.Now())

		ev := router.Event{
			Kind:       kind,
			Host:       rec.Host,
			TaskName:   rec.TaskName,
			TaskAction: rec.TaskAction,
			Playbook:   rec.Playbook,
			Result:     payload.FromAny(rec.Result),
		}
		if err := f.router.Handle(ev); err != nil {
			f.failedEvents.Add(1)
			f.logger.Error("msg", "Event processing failed",
				"component", "feed",
				"event", rec.Event,
				"host", rec.Host,
				"error", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read event stream: %w", err)
	}
	return nil
}

// GetStats returns feed statistics.
func (f *Feed) GetStats() FeedStats {
	lastEvent, _ := f.lastEventTime.Load().(time.Time)

	return FeedStats{
		TotalEvents:   f.totalEvents.Load(),
		DroppedEvents: f.droppedEvents.Load(),
		FailedEvents:  f.failedEvents.Load(),
		StartTime:     f.startTime,
		LastEventTime: lastEvent,
	}
}
