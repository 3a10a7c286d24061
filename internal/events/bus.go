// Package events carries in-process notifications from the domain layer to
// whoever is currently watching a ticket. Delivery is same-process and
// synchronous with the publishing call; there is no persistence or replay.
package events

import (
	"sync"

	"resolvewise/internal/models"
)

// CommentEvent is published once per appended comment.
type CommentEvent struct {
	TicketID   int64          `json:"ticketId"`
	NewComment models.Comment `json:"newComment"`
}

type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan CommentEvent
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan CommentEvent)}
}

// Subscribe registers a listener and returns its channel plus an
// unsubscribe func. Callers own the subscription lifetime and must
// unsubscribe when their view of the data goes away.
func (b *Bus) Subscribe() (<-chan CommentEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan CommentEvent, 8)
	b.subs[id] = ch
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if ch, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
}

// Publish delivers ev to every current subscriber. A subscriber that has
// stopped draining its channel is skipped rather than blocking the
// publisher; comment submission must never stall on a dead listener.
func (b *Bus) Publish(ev CommentEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
