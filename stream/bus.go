package stream

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tc2000/fantasy/models"
)

const (
	// DefaultQueueSize bounds the shared pull queue
	DefaultQueueSize = 100
	// DefaultHeartbeat is how long a pull consumer blocks before a synthetic
	// heartbeat is delivered instead of a real message
	DefaultHeartbeat = 30 * time.Second

	// Per-subscriber broadcast buffer. A subscriber that falls this far
	// behind loses its own messages, never anyone else's.
	subscriberBuffer = 16
)

// Bus distributes transient notification messages to two independent
// subscriber mechanisms: a single bounded FIFO queue drained by long-lived
// pull connections, and a broadcast registry feeding push connections.
// Publish never blocks the caller; the pull queue drops the newest message
// when full. One Bus is constructed at startup and injected into handlers.
type Bus struct {
	queue     chan models.Notification
	heartbeat time.Duration
	dropped   atomic.Uint64

	mu   sync.Mutex
	subs map[string]chan models.Notification
}

// NewBus creates a bus with the given pull queue capacity and heartbeat
// interval. Non-positive arguments fall back to the defaults.
func NewBus(queueSize int, heartbeat time.Duration) *Bus {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Bus{
		queue:     make(chan models.Notification, queueSize),
		heartbeat: heartbeat,
		subs:      make(map[string]chan models.Notification),
	}
}

// Publish delivers msg to the pull queue and every broadcast subscriber.
// Type and Timestamp are defaulted here so no message leaves the bus without
// them. The call never blocks: a full pull queue drops msg (counted), and a
// slow broadcast subscriber misses it without affecting the others.
func (b *Bus) Publish(msg models.Notification) {
	if msg.Type == "" {
		msg.Type = models.NotificationEvent
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	select {
	case b.queue <- msg:
	default:
		b.dropped.Add(1)
	}

	b.mu.Lock()
	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.Unlock()
}

// Consume blocks the calling pull connection until a message arrives, the
// heartbeat interval elapses (a synthetic heartbeat is returned), or ctx is
// cancelled by client disconnect.
func (b *Bus) Consume(ctx context.Context) (models.Notification, error) {
	timer := time.NewTimer(b.heartbeat)
	defer timer.Stop()

	select {
	case msg := <-b.queue:
		return msg, nil
	case <-timer.C:
		return models.Notification{
			Type:      models.NotificationHeartbeat,
			Timestamp: time.Now(),
		}, nil
	case <-ctx.Done():
		return models.Notification{}, ctx.Err()
	}
}

// Subscribe registers a push subscriber and returns its handle and channel.
// The channel is closed by Unsubscribe.
func (b *Bus) Subscribe() (string, <-chan models.Notification) {
	id := uuid.NewString()
	ch := make(chan models.Notification, subscriberBuffer)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	return id, ch
}

// Unsubscribe releases a push subscriber. Safe to call more than once.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	ch, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.mu.Unlock()

	if ok {
		close(ch)
	}
}

// SubscriberCount returns the number of registered push subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped returns how many messages the full pull queue has discarded
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Connected builds the synthetic message delivered to every subscriber
// immediately after attaching, before any queued traffic
func Connected() models.Notification {
	return models.Notification{
		Type:      models.NotificationConnected,
		Message:   "Connected to TC2000 Fantasy live feed",
		Timestamp: time.Now(),
	}
}
