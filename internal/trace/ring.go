package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory. It is meant for a
// post-mortem dump when a run fails or is interrupted.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	full  bool
	level Level
}

func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (rt *RingTracer) Emit(ev *Event) {
	if !rt.level.ShouldEmit(ev.Scope) {
		return
	}
	rt.mu.Lock()
	rt.buf[rt.next] = *ev
	rt.next++
	if rt.next == len(rt.buf) {
		rt.next = 0
		rt.full = true
	}
	rt.mu.Unlock()
}

func (rt *RingTracer) Level() Level { return rt.level }
func (rt *RingTracer) Flush() error { return nil }
func (rt *RingTracer) Close() error { return nil }

// Snapshot returns the stored events, oldest first.
func (rt *RingTracer) Snapshot() []Event {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.full {
		return append([]Event(nil), rt.buf[:rt.next]...)
	}
	out := make([]Event, 0, len(rt.buf))
	out = append(out, rt.buf[rt.next:]...)
	return append(out, rt.buf[:rt.next]...)
}

// Dump writes the snapshot to w in the given format.
func (rt *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range rt.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}
