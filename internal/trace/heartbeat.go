package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a KindHeartbeat event every interval carrying the
// current Activity. Several beats in a row with the same open span mean
// the checker is stuck in that pass.
type Heartbeat struct {
	tracer Tracer
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// StartHeartbeat returns nil when t does not trace runs or interval <= 0.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if !admits(t, CatRun) || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: t, stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(interval)
	return h
}

func (h *Heartbeat) run(interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case now := <-ticker.C:
			h.tracer.Emit(beatEvent(now, beat, CurrentActivity()))
		case <-h.stop:
			return
		}
	}
}

func beatEvent(now time.Time, beat int, a Activity) *Event {
	ev := &Event{
		Time:   now,
		Kind:   KindHeartbeat,
		Cat:    CatRun,
		Name:   "heartbeat",
		Detail: "#" + strconv.Itoa(beat),
		Extra:  map[string]string{"open": strconv.FormatInt(a.Open, 10)},
	}
	if a.Last != "" {
		ev.Extra["last"] = a.Last
	}
	return ev
}

// Stop ends the goroutine and waits for it. Safe on nil and repeated calls.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
