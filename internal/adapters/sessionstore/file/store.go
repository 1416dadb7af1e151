package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pawpal-client/internal/ports/session"
)

// Store es un session.Store durable sobre un archivo JSON.
// Es el equivalente del localStorage del cliente original: mismas tres keys,
// leídas al construir (rehidratación) y reescritas en cada Save/Clear.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  session.Session
}

// payload fija el formato en disco. Keys según el contrato original.
type payload struct {
	Token     string `json:"token"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DefaultPath devuelve la ruta estándar: <user config dir>/pawpal/session.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("sessionstore: user config dir: %w", err)
	}
	return filepath.Join(dir, "pawpal", "session.json"), nil
}

// New crea el store y rehidrata la sesión persistida si existe.
// Un archivo ausente no es error: arrancamos deslogueados.
// Un archivo corrupto tampoco corta el arranque: se descarta la sesión.
func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sessionstore: path required")
	}

	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("sessionstore: read %s: %w", path, err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return s, nil
	}

	s.cur = session.Session{
		Token:     p.Token,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	return s, nil
}

func (s *Store) Current() session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) Save(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(payload{
		Token:     sess.Token,
		FirstName: sess.FirstName,
		LastName:  sess.LastName,
	}); err != nil {
		return err
	}

	s.cur = sess
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = session.Session{}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("sessionstore: remove %s: %w", s.path, err)
	}
	return nil
}

// write persiste con permisos 0600: el archivo contiene un bearer token.
func (s *Store) write(p payload) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("sessionstore: mkdir: %w", err)
	}

	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("sessionstore: marshal: %w", err)
	}

	// escritura atómica: tmp + rename
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("sessionstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("sessionstore: rename: %w", err)
	}
	return nil
}
