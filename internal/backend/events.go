// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"sync"
)

// Outcome classifies how one exchange with the portal ended.
type Outcome int

const (
	// OutcomeOK is any 2xx response that decoded cleanly.
	OutcomeOK Outcome = iota
	// OutcomeAuthExpired is a 401 on an admin path. The session has already been cleared.
	OutcomeAuthExpired
	// OutcomeServerFault is any 5xx response.
	OutcomeServerFault
	// OutcomeOther is every other failure, including transport errors.
	OutcomeOther
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeAuthExpired:
		return "auth_expired"
	case OutcomeServerFault:
		return "server_fault"
	default:
		return "other"
	}
}

// Event describes a finished exchange. Subscribers receive it before the call
// returns to its caller.
type Event struct {
	Outcome   Outcome
	Method    string
	Path      string
	Status    int
	RequestID string
	Err       error
}

// Subscriber reacts to exchange events. It runs on the calling goroutine and
// must not call back into the client.
type Subscriber func(Event)

type subscribers struct {
	mu   sync.RWMutex
	next int
	subs map[int]Subscriber
}

func (s *subscribers) add(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]Subscriber)
	}
	id := s.next
	s.next++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *subscribers) emit(ev Event) {
	s.mu.RLock()
	fns := make([]Subscriber, 0, len(s.subs))
	for i := 0; i < s.next; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
