package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes each event to w as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	level  Level
	format Format
	err    error // first write error; later events are dropped
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	st := &StreamTracer{w: bufio.NewWriter(w), level: level, format: format}
	if c, ok := w.(io.Closer); ok && !isStdStream(w) {
		st.closer = c
	}
	return st
}

func (st *StreamTracer) Emit(ev *Event) {
	if !st.level.ShouldEmit(ev.Scope) {
		return
	}
	line := FormatEvent(ev, st.format)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.err != nil {
		return
	}
	if _, err := st.w.Write(line); err != nil {
		st.err = err
		return
	}
	// driver spans are rare and mark progress worth seeing immediately
	if ev.Scope == ScopeDriver {
		st.err = st.w.Flush()
	}
}

func (st *StreamTracer) Level() Level { return st.level }

func (st *StreamTracer) Flush() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.err != nil {
		return st.err
	}
	return st.w.Flush()
}

func (st *StreamTracer) Close() error {
	err := st.Flush()
	if st.closer != nil {
		if cerr := st.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
