package file_test

import (
	"os"
	"path/filepath"
	"testing"

	filestore "pawpal-client/internal/adapters/sessionstore/file"
	"pawpal-client/internal/ports/session"
)

func TestStore_RehydratesAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s1, err := filestore.New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	want := session.Session{Token: "abc", FirstName: "Ana", LastName: "Paz"}
	if err := s1.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	// nueva instancia = arranque de proceso nuevo
	s2, err := filestore.New(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if got := s2.Current(); got != want {
		t.Fatalf("rehydrated %+v, want %+v", got, want)
	}
}

func TestStore_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := filestore.New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.Save(session.Session{Token: "abc"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !s.Current().IsZero() {
		t.Fatal("expected empty session after clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}

	// clear idempotente
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStore_MissingAndCorruptFileStartEmpty(t *testing.T) {
	dir := t.TempDir()

	s, err := filestore.New(filepath.Join(dir, "nope.json"))
	if err != nil {
		t.Fatalf("new store on missing file: %v", err)
	}
	if !s.Current().IsZero() {
		t.Fatal("expected empty session for missing file")
	}

	corrupt := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	s2, err := filestore.New(corrupt)
	if err != nil {
		t.Fatalf("new store on corrupt file: %v", err)
	}
	if !s2.Current().IsZero() {
		t.Fatal("corrupt file must not produce a session")
	}
}

func TestStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := filestore.New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.Save(session.Session{Token: "secret"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %o", perm)
	}
}
