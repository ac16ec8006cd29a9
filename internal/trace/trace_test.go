package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelAdmitsCategories(t *testing.T) {
	tests := []struct {
		level Level
		cat   Category
		want  bool
	}{
		{LevelOff, CatRun, false},
		{LevelPhase, CatRun, true},
		{LevelPhase, CatPass, true},
		{LevelPhase, CatFile, false},
		{LevelFile, CatFile, true},
		{LevelFile, CatScope, false},
		{LevelScope, CatScope, true},
	}
	for _, tt := range tests {
		if got := tt.level.Admits(tt.cat); got != tt.want {
			t.Errorf("%s.Admits(%s) = %v, want %v", tt.level, tt.cat, got, tt.want)
		}
	}
}

func TestParseOptions(t *testing.T) {
	if l, err := ParseLevel("SCOPE"); err != nil || l != LevelScope {
		t.Errorf("ParseLevel(SCOPE) = %v, %v", l, err)
	}
	if _, err := ParseLevel("debug"); err == nil || !strings.Contains(err.Error(), "off|phase|file|scope") {
		t.Errorf("unexpected error for unknown level: %v", err)
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(both) = %v, %v", m, err)
	}
	if _, err := ParseMode(""); err == nil {
		t.Errorf("empty mode must be rejected")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
}

func TestSpanBeginEnd(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	span := Begin(ring, CatPass, "parse", 0)
	span.WithExtra("items", "3").End("ok")
	span.End("again")

	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != KindBegin || events[1].Kind != KindEnd {
		t.Fatalf("unexpected kinds %s, %s", events[0].Kind, events[1].Kind)
	}
	if events[1].SpanID != span.ID() || events[1].Detail != "ok" || events[1].Extra["items"] != "3" {
		t.Errorf("unexpected end event %+v", events[1])
	}
}

func TestFilteredSpanIsInert(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	span := Begin(ring, CatFile, "check.file", 0)
	span.WithExtra("path", "a.cym").End("")
	EnterScope(ring, 0, ScopeMove{Pass: "def", Scope: 1, Depth: 1})
	if n := len(ring.Snapshot()); n != 0 {
		t.Fatalf("expected no events, got %d", n)
	}
	if span.ID() != 0 {
		t.Errorf("filtered span must have no id")
	}
}

func TestOpenSpansCounted(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	before := CurrentActivity().Open
	span := Begin(ring, CatPass, "sema.def", 0)
	if a := CurrentActivity(); a.Open != before+1 || a.Last != "sema.def" {
		t.Errorf("activity during span = %+v", a)
	}
	span.End("")
	span.End("")
	if got := CurrentActivity().Open; got != before {
		t.Errorf("open spans after End = %d, want %d", got, before)
	}
}

func TestRingKeepsLatest(t *testing.T) {
	ring := NewRingTracer(3, LevelPhase)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, CatPass, name, 0, "")
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Errorf("snapshot = %s, want c,d,e", got)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 || lines[0] != "... 2 earlier events dropped" {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestScopeMoveNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelScope, FormatNDJSON)
	LeaveScope(st, 7, ScopeMove{Pass: "ref", Scope: 2, Depth: 0})

	var got map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if got["name"] != "ref" || got["kind"] != "leave" || got["cat"] != "scope" ||
		got["parent_id"] != float64(7) || got["scope_id"] != float64(2) || got["depth"] != float64(0) {
		t.Errorf("unexpected event %v", got)
	}
}

func TestFormatText(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{
			Event{Seq: 4, Kind: KindEnd, Cat: CatPass, Name: "sema.def",
				Extra: map[string]string{"symbols": "5", "scopes": "3"}},
			"#4     [pass] ← sema.def {scopes=3, symbols=5}\n",
		},
		{
			Event{Seq: 9, Kind: KindEnter, Cat: CatScope, ParentID: 2, Name: "def",
				Move: &ScopeMove{Pass: "def", Scope: 3, Depth: 2}},
			"#9     [scope]   ▸ def scope=3 depth=2\n",
		},
		{
			Event{Seq: 1, Kind: KindPoint, Cat: CatPass, ParentID: 1, Name: "cache.hit", Detail: "a.cym"},
			"#1     [pass]   • cache.hit (a.cym)\n",
		},
	}
	for _, tt := range tests {
		if got := string(FormatEvent(&tt.ev, FormatText)); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestBeatEvent(t *testing.T) {
	ev := beatEvent(time.Time{}, 3, Activity{Open: 2, Last: "parse"})
	if ev.Kind != KindHeartbeat || ev.Cat != CatRun || ev.Detail != "#3" {
		t.Fatalf("unexpected heartbeat %+v", ev)
	}
	if ev.Extra["open"] != "2" || ev.Extra["last"] != "parse" {
		t.Errorf("extra = %v", ev.Extra)
	}
	if _, ok := beatEvent(time.Time{}, 1, Activity{}).Extra["last"]; ok {
		t.Errorf("idle heartbeat must not name a span")
	}
}

func TestHeartbeatEmitsUntilStopped(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	hb := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	hb.Stop()
	n := len(ring.Snapshot())
	if n == 0 {
		t.Fatal("no heartbeat emitted")
	}
	time.Sleep(5 * time.Millisecond)
	if len(ring.Snapshot()) != n {
		t.Errorf("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Errorf("heartbeat must not start for Nop")
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(4, LevelPhase)
	b := NewRingTracer(4, LevelPhase)
	m := NewMultiTracer(LevelPhase, a, b)
	Begin(m, CatRun, "check.dir", 0).End("")
	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 2 {
		t.Fatalf("both tracers must receive both events")
	}
	if r, ok := m.Ring(); !ok || r != a {
		t.Errorf("Ring must return the first ring tracer")
	}
}

func TestNewBuildsSinks(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("LevelOff must give Nop, got %v, %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("ModeBoth must give a MultiTracer, got %T", tr)
	}
	if _, ok := m.Ring(); !ok {
		t.Errorf("ModeBoth must keep a ring")
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Errorf("missing mode must be rejected")
	}
}

func TestContextBinding(t *testing.T) {
	if FromContext(context.Background()) != Nop || ParentOf(context.Background()) != 0 {
		t.Fatalf("empty context must yield Nop and no parent")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	ctx = WithParent(ctx, 9)
	if FromContext(ctx) != Tracer(ring) || ParentOf(ctx) != 9 {
		t.Fatalf("binding lost")
	}
	// новый трейсер сохраняет родителя
	ctx = WithTracer(ctx, Nop)
	if ParentOf(ctx) != 9 {
		t.Errorf("WithTracer dropped the parent span")
	}
}
