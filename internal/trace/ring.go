package trace

import (
	"io"
	"sync"
	"time"
)

const defaultRingSize = 4096

// RingTracer keeps the last events of a run in memory. The CLI prints its
// tail when a load fails or panics.
type RingTracer struct {
	mu     sync.Mutex
	buf    []Event
	next   int // слот для следующего события
	filled int
	level  Level
	start  time.Time
}

// NewRingTracer creates a RingTracer holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{
		buf:   make([]Event, capacity),
		level: level,
		start: time.Now(),
	}
}

// Emit stores ev, overwriting the oldest event once the ring is full.
func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope, ev.Kind) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	if t.filled < len(t.buf) {
		t.filled++
	}
	t.mu.Unlock()
}

// Last returns up to n of the newest events, oldest first. n <= 0 means all.
func (t *RingTracer) Last(n int) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 || n > t.filled {
		n = t.filled
	}
	out := make([]Event, n)
	first := t.next - n
	if first < 0 {
		first += len(t.buf)
	}
	for i := range out {
		out[i] = t.buf[(first+i)%len(t.buf)]
	}
	return out
}

// Snapshot returns every stored event in chronological order.
func (t *RingTracer) Snapshot() []Event {
	return t.Last(0)
}

// Dump writes the newest n events (all when n <= 0) in format.
func (t *RingTracer) Dump(w io.Writer, format Format, n int) error {
	events := t.Last(n)
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format, t.start)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
