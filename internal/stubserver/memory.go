package stubserver

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// memStore guarda todo en mapas con ids autoincrementales.
// Devuelve copias de valor, nunca referencias internas.
type memStore struct {
	mu     sync.RWMutex
	nextID int64

	users        map[int64]User
	byEmail      map[string]int64
	pets         map[int64]Pet
	appointments map[int64]Appointment
}

func NewMemStore() Store {
	return &memStore{
		nextID:       1,
		users:        make(map[int64]User),
		byEmail:      make(map[string]int64),
		pets:         make(map[int64]Pet),
		appointments: make(map[int64]Appointment),
	}
}

func (s *memStore) alloc() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func normEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *memStore) CreateUser(ctx context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normEmail(u.Email)
	if _, exists := s.byEmail[key]; exists {
		return User{}, ErrDuplicateEmail
	}

	u.ID = s.alloc()
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return u, nil
}

func (s *memStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normEmail(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return s.users[id], nil
}

func (s *memStore) GetUserByID(ctx context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *memStore) UpdateUser(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	s.users[u.ID] = u
	return nil
}

func (s *memStore) CreatePet(ctx context.Context, p Pet) (Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.alloc()
	s.pets[p.ID] = p
	return p, nil
}

func (s *memStore) GetPet(ctx context.Context, id int64) (Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pets[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *memStore) UpdatePet(ctx context.Context, p Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[p.ID]; !ok {
		return ErrNotFound
	}
	s.pets[p.ID] = p
	return nil
}

func (s *memStore) DeletePet(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[id]; !ok {
		return ErrNotFound
	}
	delete(s.pets, id)
	return nil
}

func (s *memStore) ListPetsByOwner(ctx context.Context, ownerID int64) ([]Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Pet, 0)
	for _, p := range s.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}

	// orden estable por id asc (consistencia en dev)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) CreateAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.alloc()
	s.appointments[a.ID] = a
	return a, nil
}

func (s *memStore) GetAppointment(ctx context.Context, id int64) (Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (s *memStore) DeleteAppointment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(s.appointments, id)
	return nil
}

func (s *memStore) ListAppointmentsByUser(ctx context.Context, userID int64) ([]Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Appointment, 0)
	for _, a := range s.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
