// Package alerts carries operational events that must not fail the request
// that raised them, such as audit-trail write failures. Subscribers (the
// process log, future alerting hooks) receive a fan-out copy.
package alerts

import (
	"context"
	"sync"
	"time"
)

// Event is one operator-visible incident.
type Event struct {
	Kind     string            `json:"kind"`
	Detail   string            `json:"detail"`
	Fields   map[string]string `json:"fields,omitempty"`
	RaisedAt time.Time         `json:"raised_at"`
}

// Stream fan-outs events to all active subscribers.
type Stream struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// New initialises an empty stream.
func New() *Stream {
	return &Stream{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber and returns a channel which will receive
// events. The channel is closed when the provided context ends.
func (s *Stream) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, 16)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Publish fan-outs the event to all subscribers without blocking the caller.
func (s *Stream) Publish(evt Event) {
	if evt.RaisedAt.IsZero() {
		evt.RaisedAt = time.Now().UTC()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- evt:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
}
