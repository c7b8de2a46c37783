// Package session keeps per-visitor state for the web editor.
//
// A [Store] maps session IDs to values and expires sessions that have been
// idle longer than their TTL. IDs are random UUIDs carried in a cookie by the
// HTTP layer; the store itself knows nothing about HTTP.
//
// # Usage
//
//	store := session.NewStore(func(id string) (*editor.Editor, error) {
//	    return editor.New()
//	}, session.DefaultTTL)
//	defer store.Close()
//
//	sess, created, err := store.GetOrCreate(cookieValue)
//	if err != nil {
//	    return err
//	}
//	if created {
//	    // set cookie to sess.ID
//	}
//
// Values that implement io.Closer are closed when their session is deleted
// or expires.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// Session is one visitor's state.
type Session[T any] struct {
	ID        string
	Value     T
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns the time the session was last looked up.
func (s *Session[T]) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session[T]) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// IsExpired reports whether the session was idle for longer than ttl at now.
// A ttl of 0 never expires.
func (s *Session[T]) IsExpired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastSeen()) > ttl
}

// Factory creates the value for a new session.
type Factory[T any] func(id string) (T, error)

// Store is an in-memory session store. It is safe for concurrent use.
type Store[T any] struct {
	mu       sync.RWMutex
	sessions map[string]*Session[T]
	create   Factory[T]
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

// NewStore creates a store that builds values with create and expires them
// after ttl of inactivity.
func NewStore[T any](create Factory[T], ttl time.Duration) *Store[T] {
	return &Store[T]{
		sessions: make(map[string]*Session[T]),
		create:   create,
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Get returns the live session with id, refreshing its idle timer.
func (s *Store[T]) Get(id string) (*Session[T], bool) {
	if id == "" {
		return nil, false
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := s.now()
	if sess.IsExpired(now, s.ttl) {
		s.Delete(id)
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// Touch refreshes the idle timer of the session with id without checking
// expiry. It reports whether the session exists. Long-lived connections
// call it to keep their session from being swept.
func (s *Store[T]) Touch(id string) bool {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		sess.touch(s.now())
	}
	return ok
}

// GetOrCreate returns the session with id, or a new session under a fresh
// ID if id is unknown or expired. created reports whether a new session was
// made.
func (s *Store[T]) GetOrCreate(id string) (sess *Session[T], created bool, err error) {
	if sess, ok := s.Get(id); ok {
		return sess, false, nil
	}

	newID := s.newID()
	value, err := s.create(newID)
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	sess = &Session[T]{ID: newID, Value: value, CreatedAt: now, lastSeen: now}

	s.mu.Lock()
	s.sessions[newID] = sess
	s.mu.Unlock()
	return sess, true, nil
}

// Delete removes a session and closes its value.
func (s *Store[T]) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		closeValue(sess.Value)
	}
}

// Len returns the number of sessions, including expired ones not yet swept.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup removes expired sessions and returns how many were removed.
func (s *Store[T]) Cleanup() int {
	now := s.now()
	var expired []*Session[T]

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.IsExpired(now, s.ttl) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		closeValue(sess.Value)
	}
	return len(expired)
}

// Close removes every session.
func (s *Store[T]) Close() error {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*Session[T])
	s.mu.Unlock()

	for _, sess := range all {
		closeValue(sess.Value)
	}
	return nil
}

func closeValue(v any) {
	if c, ok := v.(io.Closer); ok {
		_ = c.Close()
	}
}
