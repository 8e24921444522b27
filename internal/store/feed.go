package store

import (
	"sync"

	"shiftgy-backend/internal/models"
)

type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
)

type ChangeEvent struct {
	Type ChangeType
	Log  models.PresenceLog
}

// Subscription is a handle on the session change feed. Events are delivered
// on a buffered channel; Close tears the subscription down and must be called
// when the owner is disposed.
type Subscription struct {
	events     chan ChangeEvent
	closeOnce  sync.Once
	unregister func()
}

func (s *Subscription) Events() <-chan ChangeEvent {
	return s.events
}

func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		if s.unregister != nil {
			s.unregister()
		}
		close(s.events)
	})
}

// notifier fans mutation events out to live subscriptions. Both stores embed
// one, so the mirror consumes the same feed shape on either backend.
type notifier struct {
	mu   sync.Mutex
	seq  int
	subs map[int]*Subscription
}

func (n *notifier) subscribe() *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = map[int]*Subscription{}
	}
	n.seq++
	id := n.seq
	sub := &Subscription{events: make(chan ChangeEvent, 16)}
	sub.unregister = func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
	n.subs[id] = sub
	return sub
}

func (n *notifier) publish(event ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		// Subscribers re-read the full collection per event, so dropping
		// on a full buffer loses nothing: a queued event remains.
		select {
		case sub.events <- event:
		default:
		}
	}
}
