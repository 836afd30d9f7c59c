package trace

import "errors"

// fanout copies every event to each of its tracers; tracers stamp Seq, so
// each one gets its own copy.
type fanout struct {
	tracers []Tracer
	level   Level
}

// Fanout returns a tracer emitting to all of tracers. Disabled tracers are
// dropped; with a single live tracer left it is returned as is.
func Fanout(level Level, tracers ...Tracer) Tracer {
	live := make([]Tracer, 0, len(tracers))
	for _, tr := range tracers {
		if tr != nil && tr.Enabled() {
			live = append(live, tr)
		}
	}
	switch len(live) {
	case 0:
		return Nop
	case 1:
		return live[0]
	}
	return &fanout{tracers: live, level: level}
}

func (t *fanout) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *fanout) Flush() error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *fanout) Close() error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *fanout) Level() Level  { return t.level }
func (t *fanout) Enabled() bool { return t.level > LevelOff }
