package gldebug

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fosdem/glboot/lib/metrics"
)

const subscriberBacklog = 64

// Hub receives debug messages on the render thread and hands them to
// subscribers on other goroutines. Slow subscribers lose messages rather
// than stalling the driver callback.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Message]struct{}
	logger *slog.Logger

	received uint64
	dropped  uint64
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[chan Message]struct{}),
		logger: slog.With("module", "gl-debug"),
	}
}

// Publish logs the message, counts it and forwards it to every subscriber.
func (h *Hub) Publish(m Message) {
	h.logger.Log(context.Background(), m.Level(), m.String(),
		"source", SourceName(m.Source), "id", m.ID)
	metrics.DebugMessages.WithLabelValues(SeverityName(m.Severity)).Inc()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.received++
	for ch := range h.subs {
		select {
		case ch <- m:
		default:
			h.dropped++
		}
	}
}

// Subscribe returns a channel of future messages and a function that
// unsubscribes and closes it.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, subscriberBacklog)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Counts returns how many messages were published and how many subscriber
// deliveries were dropped.
func (h *Hub) Counts() (received, dropped uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received, h.dropped
}
