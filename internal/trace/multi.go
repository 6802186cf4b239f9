package trace

import "github.com/cockroachdb/errors"

// MultiTracer copies every event to each of its tracers. With ModeBoth it
// pairs a stream with the ring used for crash dumps.
type MultiTracer struct {
	level   Level
	tracers []Tracer
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{level: level, tracers: tracers}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error {
	return t.each(Tracer.Flush)
}

func (t *MultiTracer) Close() error {
	return t.each(Tracer.Close)
}

// each calls fn on every tracer and combines the errors.
func (t *MultiTracer) each(fn func(Tracer) error) error {
	var err error
	for _, tr := range t.tracers {
		err = errors.CombineErrors(err, fn(tr))
	}
	return err
}

// Ring returns the first ring among the tracers, or nil.
func (t *MultiTracer) Ring() *RingTracer {
	for _, tr := range t.tracers {
		if r := RingOf(tr); r != nil {
			return r
		}
	}
	return nil
}

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
