package quote

import (
	"fmt"
	"sync"
	"time"

	"github.com/tiendc/go-deepcopy"
)

// Session owns the State of one browser session. Changes go through Dispatch; subscribers
// receive the resulting diffs over channels.
type Session struct {
	mu       sync.Mutex
	state    State
	lastSeen time.Time
	subs     map[int]chan Diff
	nextSub  int
}

// NewSession starts a session whose quote number is derived from now.
func NewSession(now time.Time) *Session {
	return &Session{
		state:    NewState(NewQuoteNumber(now)),
		lastSeen: now,
		subs:     make(map[int]chan Diff),
	}
}

// Dispatch applies a and notifies subscribers. A subscriber that is not keeping up misses
// the diff rather than blocking the session.
func (s *Session) Dispatch(a Action) (Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, diff, err := Apply(s.state, a)
	if err != nil {
		return Diff{}, err
	}
	s.state = next

	for _, ch := range s.subs {
		select {
		case ch <- diff:
		default:
		}
	}
	return diff, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out State
	if err := deepcopy.Copy(&out, &s.state); err != nil {
		return State{}, fmt.Errorf("copy session state: %w", err)
	}
	return out, nil
}

// Subscribe returns a channel of diffs and a function that closes it.
func (s *Session) Subscribe(buffer int) (<-chan Diff, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Diff, buffer)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Touch records activity on the session.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) quoteNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.QuoteNumber
}
