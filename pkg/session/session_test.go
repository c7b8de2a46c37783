package session

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func newTestStore(ttl time.Duration) (*Store[*closer], *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(func(string) (*closer, error) { return &closer{}, nil }, ttl)
	s.now = func() time.Time { return now }
	var n int
	s.newID = func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}
	return s, &now
}

func TestGetOrCreate(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	a, created, err := s.GetOrCreate("")
	if err != nil || !created || a.ID != "s1" {
		t.Fatalf("GetOrCreate(\"\") = %v, %v, %v", a, created, err)
	}

	b, created, err := s.GetOrCreate("s1")
	if err != nil || created || b != a {
		t.Errorf("GetOrCreate(s1) = %v, %v, %v; want existing session", b, created, err)
	}

	c, created, _ := s.GetOrCreate("unknown")
	if !created || c.ID != "s2" {
		t.Errorf("GetOrCreate(unknown) created=%v id=%s, want new s2", created, c.ID)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestFactoryError(t *testing.T) {
	want := errors.New("boom")
	s := NewStore(func(string) (int, error) { return 0, want }, time.Hour)
	if _, _, err := s.GetOrCreate(""); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after failed create", s.Len())
	}
}

func TestExpiry(t *testing.T) {
	s, now := newTestStore(time.Minute)
	a, _, _ := s.GetOrCreate("")

	*now = now.Add(30 * time.Second)
	if _, ok := s.Get(a.ID); !ok {
		t.Fatal("session expired early")
	}

	*now = now.Add(45 * time.Second)
	if _, ok := s.Get(a.ID); !ok {
		t.Fatal("Get did not refresh idle timer")
	}

	*now = now.Add(2 * time.Minute)
	if _, ok := s.Get(a.ID); ok {
		t.Error("expired session returned")
	}
	if !a.Value.closed {
		t.Error("expired value not closed")
	}
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	s, now := newTestStore(time.Minute)
	a, _, _ := s.GetOrCreate("")

	for i := 0; i < 5; i++ {
		*now = now.Add(40 * time.Second)
		if !s.Touch(a.ID) {
			t.Fatalf("Touch(%q) = false", a.ID)
		}
	}
	if n := s.Cleanup(); n != 0 {
		t.Errorf("Cleanup() = %d, want 0", n)
	}
	if a.Value.closed {
		t.Error("touched session was closed")
	}
	if s.Touch("missing") {
		t.Error("Touch of unknown id = true")
	}
}

func TestCleanup(t *testing.T) {
	s, now := newTestStore(time.Minute)
	old, _, _ := s.GetOrCreate("")
	*now = now.Add(50 * time.Second)
	fresh, _, _ := s.GetOrCreate("")
	*now = now.Add(20 * time.Second)

	if n := s.Cleanup(); n != 1 {
		t.Errorf("Cleanup() = %d, want 1", n)
	}
	if !old.Value.closed || fresh.Value.closed {
		t.Errorf("closed: old=%v fresh=%v", old.Value.closed, fresh.Value.closed)
	}
	if _, ok := s.Get(fresh.ID); !ok {
		t.Error("fresh session removed")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s, now := newTestStore(0)
	a, _, _ := s.GetOrCreate("")
	*now = now.Add(1000 * time.Hour)
	if _, ok := s.Get(a.ID); !ok {
		t.Error("session expired with zero TTL")
	}
}

func TestDeleteAndClose(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	a, _, _ := s.GetOrCreate("")
	b, _, _ := s.GetOrCreate("")

	s.Delete(a.ID)
	if !a.Value.closed || s.Len() != 1 {
		t.Errorf("after Delete: closed=%v len=%d", a.Value.closed, s.Len())
	}
	s.Delete("missing")

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !b.Value.closed || s.Len() != 0 {
		t.Errorf("after Close: closed=%v len=%d", b.Value.closed, s.Len())
	}
}
