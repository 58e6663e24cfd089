package client

import (
	"context"
	"sync"

	"github.com/encontros-app/date-spots-api/internal/types"
)

// recommendationsFunction is the backend function name invoked for a search.
const recommendationsFunction = "recommendations"

// State is the session's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSucceeded
	StateFailed
)

// Session holds the last search's loading/error/result state for one UI
// consumer. One logical request is in flight per Session; a new search
// replaces the previous batch entirely.
type Session struct {
	transport Transport

	mu        sync.Mutex
	state     State
	places    []types.Place
	lastError string
}

func NewSession(transport Transport) *Session {
	return &Session{transport: transport, state: StateIdle}
}

// SearchPlaces runs one search. Previous results are cleared the moment the
// session enters Loading, so stale places never render during a new load.
func (s *Session) SearchPlaces(ctx context.Context, filters types.PlaceFilters) ([]types.Place, error) {
	s.mu.Lock()
	s.state = StateLoading
	s.places = nil
	s.lastError = ""
	s.mu.Unlock()

	var resp types.RecommendationsResponse
	err := s.transport.Invoke(ctx, recommendationsFunction, filters, &resp)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.lastError = err.Error()
		return nil, err
	}
	s.state = StateSucceeded
	s.places = resp.Places
	return resp.Places, nil
}

// ClearPlaces resets the session to Idle from any state. No network call is
// made.
func (s *Session) ClearPlaces() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.places = nil
	s.lastError = ""
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Places returns the last successful batch, nil otherwise.
func (s *Session) Places() []types.Place {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.places
}

// LastError returns the failure message of the last search, empty when the
// session is not in StateFailed.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
