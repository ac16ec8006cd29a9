package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the latest events of a run in memory; the CLI prints
// them when a command panics.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	total uint64 // events ever stored
	level Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.Admits(ev.Cat) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	stored.Seq = nextSeq()
	t.buf[t.total%uint64(len(t.buf))] = stored
	t.total++
}

// Snapshot returns the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	events, _ := t.snapshot()
	return events
}

func (t *RingTracer) snapshot() (events []Event, dropped uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := uint64(len(t.buf))
	if t.total > n {
		dropped = t.total - n
	}
	events = make([]Event, 0, t.total-dropped)
	for i := dropped; i < t.total; i++ {
		events = append(events, t.buf[i%n])
	}
	return events, dropped
}

// Dump writes the kept events. Text output starts with a line counting
// the events that were overwritten, if any.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events, dropped := t.snapshot()
	if dropped > 0 && format != FormatNDJSON {
		if _, err := fmt.Fprintf(w, "... %d earlier events dropped\n", dropped); err != nil {
			return err
		}
	}
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
