package usecase

import (
	"context"

	"github.com/bnema/textedit/internal/application/port"
	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/logging"
)

// DefaultNotificationQueueSize bounds the drain queue when the host never
// drains it.
const DefaultNotificationQueueSize = 256

// ChangeFeed is the single outlet of change notifications. Hosts either
// poll it with Drain or register callbacks with Subscribe; both see every
// notification.
type ChangeFeed struct {
	queue    []entity.ChangeNotification
	capacity int

	observers map[uint64]port.ChangeObserver
	order     []uint64
	nextID    uint64
}

// NewChangeFeed creates a feed whose queue keeps at most capacity
// notifications. A non-positive capacity uses the default.
func NewChangeFeed(capacity int) *ChangeFeed {
	if capacity <= 0 {
		capacity = DefaultNotificationQueueSize
	}
	return &ChangeFeed{
		capacity:  capacity,
		observers: make(map[uint64]port.ChangeObserver),
	}
}

// Publish queues notifications and then calls every observer, in
// subscription order, for each of them.
func (f *ChangeFeed) Publish(ctx context.Context, notes []entity.ChangeNotification) {
	if len(notes) == 0 {
		return
	}
	log := logging.FromContext(ctx)

	for _, n := range notes {
		if len(f.queue) == f.capacity {
			log.Warn().
				Str("field_id", string(f.queue[0].FieldID)).
				Int("capacity", f.capacity).
				Msg("notification queue full, dropping oldest")
			f.queue = f.queue[1:]
		}
		f.queue = append(f.queue, n)
	}

	// observers may unsubscribe while being notified
	ids := append([]uint64(nil), f.order...)
	for _, n := range notes {
		for _, id := range ids {
			if obs, ok := f.observers[id]; ok {
				obs.OnTextChanged(ctx, n)
			}
		}
	}
}

// Drain returns the queued notifications in order and empties the queue.
func (f *ChangeFeed) Drain() []entity.ChangeNotification {
	out := f.queue
	f.queue = nil
	return out
}

// Pending returns the number of queued notifications.
func (f *ChangeFeed) Pending() int {
	return len(f.queue)
}

// Subscribe registers obs and returns a function that unregisters it.
func (f *ChangeFeed) Subscribe(obs port.ChangeObserver) (unsubscribe func()) {
	f.nextID++
	id := f.nextID
	f.observers[id] = obs
	f.order = append(f.order, id)

	return func() {
		if _, ok := f.observers[id]; !ok {
			return
		}
		delete(f.observers, id)
		for i, other := range f.order {
			if other == id {
				f.order = append(f.order[:i:i], f.order[i+1:]...)
				break
			}
		}
	}
}
