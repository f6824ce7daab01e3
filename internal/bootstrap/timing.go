package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/textedit/internal/logging"
)

// PhaseTimer records how long each setup phase took.
// Safe for use from several goroutines.
type PhaseTimer struct {
	start  time.Time
	last   time.Time
	phases map[string]time.Duration
	order  []string
	mu     sync.Mutex
	now    func() time.Time
}

// NewPhaseTimer creates a timer starting from now.
func NewPhaseTimer() *PhaseTimer {
	return newPhaseTimer(time.Now)
}

func newPhaseTimer(now func() time.Time) *PhaseTimer {
	start := now()
	return &PhaseTimer{
		start:  start,
		last:   start,
		phases: make(map[string]time.Duration),
		now:    now,
	}
}

// Mark records the time since the previous mark (or start) under phase.
func (t *PhaseTimer) Mark(phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if _, seen := t.phases[phase]; !seen {
		t.order = append(t.order, phase)
	}
	t.phases[phase] += now.Sub(t.last)
	t.last = now
}

// Phase returns the recorded duration of phase.
func (t *PhaseTimer) Phase(phase string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.phases[phase]
	return d, ok
}

// Phases returns the phase names in the order they were first marked.
func (t *PhaseTimer) Phases() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

// Total returns the time elapsed since the timer was created.
func (t *PhaseTimer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.start)
}

// LogDebug writes every phase to the context logger at debug level.
func (t *PhaseTimer) LogDebug(ctx context.Context, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := logging.FromContext(ctx).Debug().Dur("total", t.now().Sub(t.start))
	for _, phase := range t.order {
		event = event.Dur(phase, t.phases[phase])
	}
	event.Msg(msg)
}
