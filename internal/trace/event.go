package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindEnter // scope pushed on the resolver stack
	KindLeave // scope popped
	KindHeartbeat
)

var kindNames = [...]string{"", "begin", "end", "point", "enter", "leave", "heartbeat"}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ScopeMove is the payload of KindEnter and KindLeave events.
type ScopeMove struct {
	Pass  string // "def" or "ref"
	Scope uint32 // symbols.ScopeID
	Depth int    // stack depth after the move
}

// Event is one trace record. Seq is stamped by the sink that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Cat      Category
	SpanID   uint64
	ParentID uint64
	Name     string // "parse", "sema.ref", "cache.hit", pass name for scope moves
	Detail   string
	Extra    map[string]string
	Move     *ScopeMove
}
