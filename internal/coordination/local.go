package coordination

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type localEntry struct {
	value string
	exp   time.Time // zero => no expiry
}

// LocalStore is an in-process Store for tests and single-node
// development. It honors the same atomicity contract under its mutex,
// but its state is invisible to other instances; never deploy it where
// cross-instance coordination matters.
type LocalStore struct {
	mu  sync.Mutex
	m   map[string]localEntry
	now func() time.Time
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore() *LocalStore {
	return &LocalStore{m: make(map[string]localEntry), now: time.Now}
}

// SetClock replaces the time source. Test hook for expiry behavior.
func (s *LocalStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *LocalStore) live(key string) (localEntry, bool) {
	e, ok := s.m[key]
	if !ok {
		return localEntry{}, false
	}
	if !e.exp.IsZero() && s.now().After(e.exp) {
		delete(s.m, key)
		return localEntry{}, false
	}
	return e, true
}

func (s *LocalStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	if !ok {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *LocalStore) SetEx(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = localEntry{value: value, exp: s.expiry(ttl)}
	return nil
}

func (s *LocalStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live(key); ok {
		return false, nil
	}
	s.m[key] = localEntry{value: value, exp: s.expiry(ttl)}
	return true, nil
}

func (s *LocalStore) IncrWindow(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	if !ok {
		s.m[key] = localEntry{value: "1", exp: s.expiry(window)}
		return 1, nil
	}
	n, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		return 0, err
	}
	n++
	e.value = strconv.FormatInt(n, 10)
	s.m[key] = e
	return n, nil
}

func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[string]localEntry)
	return nil
}

func (s *LocalStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}
