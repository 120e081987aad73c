package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelOff, false},
		{"Driver", LevelDriver, false},
		{"file", LevelFile, false},
		{"all", LevelPass, false},
		{"debug", LevelOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !LevelFile.ShouldEmit(ScopeDriver) || !LevelFile.ShouldEmit(ScopeFile) {
		t.Fatal("file level drops coarser scopes")
	}
	if LevelFile.ShouldEmit(ScopePass) {
		t.Fatal("file level keeps pass events")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatal("off level emits")
	}
}

func TestSpansNestThroughContext(t *testing.T) {
	rt := NewRingTracer(16, LevelPass)
	ctx := WithTracer(context.Background(), rt)

	ctx, file := Start(ctx, ScopeFile, "file:a.jai")
	pass := Begin(FromContext(ctx), ScopePass, "parse", CurrentSpan(ctx).SpanID)
	pass.WithExtra("nodes", "12").End("")
	file.End("ok")

	evs := rt.Snapshot()
	if len(evs) != 4 {
		t.Fatalf("got %d events, want 4", len(evs))
	}
	if evs[1].ParentID != evs[0].SpanID {
		t.Errorf("pass parent = %d, want %d", evs[1].ParentID, evs[0].SpanID)
	}
	if evs[2].Kind != KindSpanEnd || evs[2].Extra["nodes"] != "12" || evs[2].Extra["dur"] == "" {
		t.Errorf("pass end event = %+v", evs[2])
	}
	if evs[3].Detail != "ok" {
		t.Errorf("file end detail = %q", evs[3].Detail)
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	rt := NewRingTracer(4, LevelDriver)
	s := Begin(rt, ScopePass, "lex", 0)
	s.WithExtra("k", "v").End("")
	if n := len(rt.Snapshot()); n != 0 {
		t.Fatalf("%d events recorded below the level", n)
	}
	var nilSpan *Span
	if nilSpan.End("") != 0 || nilSpan.ID() != 0 {
		t.Fatal("nil span not inert")
	}
}

func TestRingWraps(t *testing.T) {
	rt := NewRingTracer(3, LevelPass)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		rt.Emit(&Event{Scope: ScopeDriver, Name: name})
	}
	var names []string
	for _, ev := range rt.Snapshot() {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ""); got != "cde" {
		t.Fatalf("snapshot = %q, want %q", got, "cde")
	}
}

func TestStreamFormats(t *testing.T) {
	ev := &Event{Kind: KindSpanEnd, Scope: ScopePass, Name: "parse", Extra: map[string]string{"b": "2", "a": "1"}}

	var text bytes.Buffer
	st := NewStreamTracer(&text, LevelPass, FormatText)
	st.Emit(ev)
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}
	if got := text.String(); !strings.HasSuffix(got, "    <- parse a=1 b=2\n") {
		t.Errorf("text line = %q", got)
	}

	var nd bytes.Buffer
	st = NewStreamTracer(&nd, LevelPass, FormatNDJSON)
	st.Emit(ev)
	if err := st.Flush(); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(nd.Bytes(), &decoded); err != nil {
		t.Fatalf("ndjson line %q: %v", nd.String(), err)
	}
	if decoded["kind"] != "end" || decoded["scope"] != "pass" {
		t.Errorf("decoded = %v", decoded)
	}
}

type failingTracer struct{ nopTracer }

func (failingTracer) Level() Level { return LevelPass }
func (failingTracer) Flush() error { return errors.New("disk full") }
func (failingTracer) Close() error { return errors.New("bad handle") }

func TestMultiAggregatesErrors(t *testing.T) {
	rt := NewRingTracer(4, LevelDriver)
	mt := NewMultiTracer(rt, failingTracer{}, failingTracer{})
	if mt.Level() != LevelPass {
		t.Fatalf("level = %v, want pass", mt.Level())
	}
	if mt.Ring() != rt {
		t.Fatal("Ring() did not find the ring tracer")
	}
	err := mt.Close()
	if err == nil || strings.Count(err.Error(), "bad handle") != 2 {
		t.Fatalf("Close() = %v", err)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	tr, err = New(Config{Level: LevelFile, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("ModeBoth built %T", tr)
	}
}
