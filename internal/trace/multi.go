package trace

import "github.com/hashicorp/go-multierror"

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer combines ts. Its level is the finest of theirs.
func NewMultiTracer(ts ...Tracer) *MultiTracer {
	mt := &MultiTracer{tracers: ts}
	for _, t := range ts {
		mt.level = max(mt.level, t.Level())
	}
	return mt
}

func (mt *MultiTracer) Emit(ev *Event) {
	for _, t := range mt.tracers {
		t.Emit(ev)
	}
}

func (mt *MultiTracer) Level() Level { return mt.level }

func (mt *MultiTracer) Flush() error {
	var result *multierror.Error
	for _, t := range mt.tracers {
		if err := t.Flush(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (mt *MultiTracer) Close() error {
	var result *multierror.Error
	for _, t := range mt.tracers {
		if err := t.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Ring returns the first ring tracer among mt's children, if any.
func (mt *MultiTracer) Ring() *RingTracer {
	for _, t := range mt.tracers {
		if rt, ok := t.(*RingTracer); ok {
			return rt
		}
	}
	return nil
}
