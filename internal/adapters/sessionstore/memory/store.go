package memory

import (
	"sync"

	"pawpal-client/internal/ports/session"
)

// Store es un session.Store en memoria, sin persistencia.
// Pensado para tests y para el modo dev del CLI.
type Store struct {
	mu  sync.RWMutex
	cur session.Session
}

func New() *Store {
	return &Store{}
}

func (s *Store) Current() session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) Save(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = sess
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = session.Session{}
	return nil
}
