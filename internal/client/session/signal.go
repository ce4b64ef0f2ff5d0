package session

import (
	"sync"

	"github.com/google/uuid"
)

// Event describes one unauthorized response.
type Event struct {
	// Seq increases by one for every published event, starting at 1.
	Seq  uint64
	Path string
}

type subscriber struct {
	id string
	fn func(Event)
}

// Signal delivers unauthorized events to subscribers. Publish is called once
// per 401 response; each subscriber sees every event exactly once, in
// subscription order.
type Signal struct {
	mu   sync.RWMutex
	subs []subscriber
	seq  uint64
}

func NewSignal() *Signal {
	return &Signal{}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function may be called more than once.
func (s *Signal) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := uuid.NewString()

	s.mu.Lock()
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish emits one event for path and returns it. Subscribers run
// synchronously on the caller's goroutine, outside the lock.
func (s *Signal) Publish(path string) Event {
	s.mu.Lock()
	s.seq++
	ev := Event{Seq: s.seq, Path: path}
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
	return ev
}

// Published returns how many events have been emitted so far.
func (s *Signal) Published() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}
