// Package navigation holds the coarse top-level app mode for each signed-in
// user: authentication, profile setup, or the main app. Modes are derived
// from one invariant only — a profile is complete iff it has at least one
// photo and a non-empty bio — and changes are delivered to an explicit
// subscriber list rather than through shared mutable session state.
package navigation

import (
	"sync"

	"cupid/models"
)

// Mode is the top-level app surface a client should show.
type Mode string

const (
	ModeAuthentication Mode = "authentication"
	ModeProfileSetup   Mode = "profileSetup"
	ModeMain           Mode = "main"
)

// Event is one mode transition for one user.
type Event struct {
	UserID string
	Mode   Mode
}

// ResolveMode derives the mode for a session. A nil profile means the
// session is unauthenticated.
func ResolveMode(profile *models.UserProfile) Mode {
	if profile == nil {
		return ModeAuthentication
	}
	if profile.IsComplete() {
		return ModeMain
	}
	return ModeProfileSetup
}

// Store keeps the last-known mode per user and fans transitions out to
// subscribers. Last write wins.
type Store struct {
	mu     sync.Mutex
	modes  map[string]Mode
	subs   map[int]func(Event)
	nextID int
}

// NewStore returns an empty navigation store.
func NewStore() *Store {
	return &Store{
		modes: make(map[string]Mode),
		subs:  make(map[int]func(Event)),
	}
}

// Subscribe registers fn for every transition and returns an unsubscribe func.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Set records the mode for a user and notifies subscribers.
func (s *Store) Set(userID string, mode Mode) {
	s.mu.Lock()
	s.modes[userID] = mode
	listeners := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	ev := Event{UserID: userID, Mode: mode}
	for _, fn := range listeners {
		fn(ev)
	}
}

// SetFromProfile derives and records the mode for an authenticated user.
func (s *Store) SetFromProfile(userID string, profile *models.UserProfile) Mode {
	mode := ResolveMode(profile)
	s.Set(userID, mode)
	return mode
}

// ModeFor returns the last recorded mode, defaulting to authentication.
func (s *Store) ModeFor(userID string) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.modes[userID]; ok {
		return m
	}
	return ModeAuthentication
}

// CompleteProfileSetup force-transitions a user to the main app.
func (s *Store) CompleteProfileSetup(userID string) {
	s.Set(userID, ModeMain)
}

// GoToAuthScreen drops a user back to the authentication surface.
func (s *Store) GoToAuthScreen(userID string) {
	s.Set(userID, ModeAuthentication)
}
