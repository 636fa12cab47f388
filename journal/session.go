package journal

import "sync"

// Session is a current-value broadcaster for the authenticated/unauthenticated
// state that drives the UI's login branch. It holds only the latest value:
// a new subscriber immediately receives the current state, updates are
// delivered latest-value-wins, and no history is buffered. Observers that
// fall behind see the most recent state, not every transition.
type Session struct {
	mu            sync.Mutex
	authenticated bool
	subs          map[chan bool]struct{}
}

// newSession returns a session in the given initial state.
func newSession(authenticated bool) *Session {
	return &Session{
		authenticated: authenticated,
		subs:          make(map[chan bool]struct{}),
	}
}

// Authenticated reports the current state.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Subscribe registers an observer. The returned channel immediately yields
// the current state and then receives updates. The cancel func unregisters
// the observer and closes the channel; call it exactly once.
func (s *Session) Subscribe() (<-chan bool, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan bool, 1)
	ch <- s.authenticated
	s.subs[ch] = struct{}{}

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// set publishes a new state to all subscribers. A subscriber whose buffered
// value has not been consumed yet has it replaced, so the channel always
// holds the most recent state.
func (s *Session) set(authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = authenticated
	for ch := range s.subs {
		select {
		case ch <- authenticated:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- authenticated
		}
	}
}
