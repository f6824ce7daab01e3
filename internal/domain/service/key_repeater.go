package service

import (
	"slices"
	"time"

	"github.com/bnema/textedit/internal/domain/entity"
)

// Default repeat timing, matching common desktop keyboards.
const (
	DefaultRepeatInitialDelay = 500 * time.Millisecond
	DefaultRepeatInterval     = 100 * time.Millisecond
	DefaultMaxRepeatsPerTick  = 0
)

// RepeatConfig holds key repeat timing. Zero values take the defaults.
type RepeatConfig struct {
	InitialDelay time.Duration
	Interval     time.Duration
	// MaxPerTick caps catch-up repeats for one key in one Advance call.
	// Zero means no cap, so a late tick replays the whole schedule.
	MaxPerTick int
}

func (c RepeatConfig) withDefaults() RepeatConfig {
	if c.InitialDelay <= 0 {
		c.InitialDelay = DefaultRepeatInitialDelay
	}
	if c.Interval <= 0 {
		c.Interval = DefaultRepeatInterval
	}
	if c.MaxPerTick < 0 {
		c.MaxPerTick = DefaultMaxRepeatsPerTick
	}
	return c
}

// Repeat is a synthetic press produced by the repeater.
type Repeat struct {
	Key entity.Key
	At  time.Duration
}

type heldKey struct {
	key          entity.Key
	seq          uint64
	pressedAt    time.Duration
	lastRepeatAt time.Duration
	repeating    bool
	releaseAt    time.Duration
	releasing    bool
}

// next returns when the following repeat is due.
func (h *heldKey) next(cfg RepeatConfig) time.Duration {
	if !h.repeating {
		return h.pressedAt + cfg.InitialDelay
	}
	return h.lastRepeatAt + cfg.Interval
}

// KeyRepeater runs one Idle -> Pressed -> Repeating -> Idle machine per
// held key. Times are offsets on the host's monotonic clock.
//
// Repeats follow a fixed cadence computed from the press time, so irregular
// ticks do not drift the schedule. A release noted ahead of time (see
// NoteRelease) suppresses every repeat scheduled at or after it.
type KeyRepeater struct {
	cfg     RepeatConfig
	held    map[entity.Key]*heldKey
	pending map[entity.Key][]time.Duration
	seq     uint64
}

// NewKeyRepeater returns an idle repeater.
func NewKeyRepeater(cfg RepeatConfig) *KeyRepeater {
	return &KeyRepeater{
		cfg:     cfg.withDefaults(),
		held:    make(map[entity.Key]*heldKey),
		pending: make(map[entity.Key][]time.Duration),
	}
}

// Config returns the effective timing.
func (r *KeyRepeater) Config() RepeatConfig { return r.cfg }

// SetConfig replaces the timing. Keys already held keep their press time
// and follow the new cadence from their next repeat.
func (r *KeyRepeater) SetConfig(cfg RepeatConfig) {
	r.cfg = cfg.withDefaults()
}

// Press starts tracking key. A press of a key already held restarts its
// hold. The caller forwards the press itself immediately.
func (r *KeyRepeater) Press(key entity.Key, at time.Duration) {
	r.seq++
	h := &heldKey{key: key, seq: r.seq, pressedAt: at}
	for _, rel := range r.pending[key] {
		if rel >= at && (!h.releasing || rel < h.releaseAt) {
			h.releaseAt = rel
			h.releasing = true
		}
	}
	r.held[key] = h
}

// Release stops tracking key. No trailing event is produced.
func (r *KeyRepeater) Release(key entity.Key, at time.Duration) {
	delete(r.held, key)

	rest := r.pending[key][:0]
	for _, rel := range r.pending[key] {
		if rel > at {
			rest = append(rest, rel)
		}
	}
	if len(rest) == 0 {
		delete(r.pending, key)
		return
	}
	r.pending[key] = rest
}

// NoteRelease announces a release that will be applied later in the same
// batch. Repeats scheduled at or after it are never produced.
func (r *KeyRepeater) NoteRelease(key entity.Key, at time.Duration) {
	r.pending[key] = append(r.pending[key], at)
	if h, ok := r.held[key]; ok && at >= h.pressedAt {
		if !h.releasing || at < h.releaseAt {
			h.releaseAt = at
			h.releasing = true
		}
	}
}

// EndBatch forgets releases noted for the batch that just finished.
func (r *KeyRepeater) EndBatch() {
	clear(r.pending)
}

// ReleaseAll drops every held key.
func (r *KeyRepeater) ReleaseAll() {
	clear(r.held)
	clear(r.pending)
}

// IsHeld reports whether key is tracked.
func (r *KeyRepeater) IsHeld(key entity.Key) bool {
	_, ok := r.held[key]
	return ok
}

// Held returns the tracked keys in press order.
func (r *KeyRepeater) Held() []entity.Key {
	hs := r.sorted()
	keys := make([]entity.Key, len(hs))
	for i, h := range hs {
		keys[i] = h.key
	}
	return keys
}

// Advance moves the clock to now and returns the repeats that became due,
// ordered by their scheduled time.
func (r *KeyRepeater) Advance(now time.Duration) []Repeat {
	var out []Repeat
	for _, h := range r.sorted() {
		emitted := 0
		for {
			due := h.next(r.cfg)
			if due > now {
				break
			}
			if h.releasing && due >= h.releaseAt {
				break
			}
			if r.cfg.MaxPerTick > 0 && emitted == r.cfg.MaxPerTick {
				// Too far behind: drop the backlog and restart the
				// cadence from now.
				h.lastRepeatAt = now
				break
			}
			out = append(out, Repeat{Key: h.key, At: due})
			h.repeating = true
			h.lastRepeatAt = due
			emitted++
		}
	}

	slices.SortStableFunc(out, func(a, b Repeat) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	return out
}

func (r *KeyRepeater) sorted() []*heldKey {
	hs := make([]*heldKey, 0, len(r.held))
	for _, h := range r.held {
		hs = append(hs, h)
	}
	slices.SortFunc(hs, func(a, b *heldKey) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return hs
}
