package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64

	// открытые спаны процесса; их показывает heartbeat
	openSpans atomic.Int64
	lastBegun atomic.Value // string
)

func nextSeq() uint64 { return seqCounter.Add(1) }

func admits(t Tracer, cat Category) bool {
	return t != nil && t.Enabled() && t.Level().Admits(cat)
}

// Span is a begun operation: a pass over one file, a file inside a
// directory run, the run itself. A span filtered out by the level is
// inert and has ID 0.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	cat     Category
	name    string
	started time.Time
	extra   map[string]string
	done    bool
}

// Begin emits a KindBegin event and returns the span to End.
func Begin(t Tracer, cat Category, name string, parent uint64) *Span {
	if !admits(t, cat) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		cat:     cat,
		name:    name,
		started: time.Now(),
	}
	openSpans.Add(1)
	lastBegun.Store(name)
	t.Emit(&Event{Time: s.started, Kind: KindBegin, Cat: cat, SpanID: s.id, ParentID: parent, Name: name})
	return s
}

// End emits KindEnd with the collected extras. Only the first call counts.
func (s *Span) End(detail string) {
	if s == nil || s.tracer == nil || s.done {
		return
	}
	s.done = true
	openSpans.Add(-1)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindEnd,
		Cat:      s.cat,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, cat Category, name string, parent uint64, detail string) {
	if !admits(t, cat) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Cat: cat, ParentID: parent, Name: name, Detail: detail})
}

// EnterScope records a push on the resolver stack of a pass.
func EnterScope(t Tracer, parent uint64, m ScopeMove) {
	moveScope(t, KindEnter, parent, m)
}

// LeaveScope records a pop.
func LeaveScope(t Tracer, parent uint64, m ScopeMove) {
	moveScope(t, KindLeave, parent, m)
}

func moveScope(t Tracer, kind Kind, parent uint64, m ScopeMove) {
	if !admits(t, CatScope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: kind, Cat: CatScope, ParentID: parent, Name: m.Pass, Move: &m})
}

// Activity is what a heartbeat reports.
type Activity struct {
	Open int64  // spans begun and not yet ended
	Last string // name of the most recently begun span
}

func CurrentActivity() Activity {
	last, _ := lastBegun.Load().(string)
	return Activity{Open: openSpans.Load(), Last: last}
}
