package stubserver

import (
	"context"
	"errors"
	"time"
)

// stubserver es el backend de desarrollo de PawPal: implementa el contrato de
// endpoints que consume el gateway, con storage en memoria o Postgres.
// No es el backend real; existe para correr el cliente end-to-end.

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// InitialPassword es la contraseña con la que nace toda cuenta registrada.
// El backend real la emite por otro canal; el stub usa una fija para que el
// ciclo register -> login -> reset sea manejable en dev y tests.
const InitialPassword = "welcome1"

type User struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     []byte
	Photo            string // base64
	PhotoType        string
	PasswordAttempts int
	IsNew            bool
	Roles            []string
}

type Pet struct {
	ID          int64
	OwnerID     int64
	Name        string
	Image       string // base64
	ImageType   string
	IsMale      bool
	DateOfBirth time.Time
	Breed       string
	Weight      float64
	Type        string
}

type Appointment struct {
	ID              int64
	UserID          int64
	PetID           int64
	Status          string
	Date            time.Time
	DurationMinutes int
	Cost            float64
}

// Store es el storage del stub. Dos adapters: memoria (default) y Postgres.
type Store interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	UpdateUser(ctx context.Context, u User) error

	CreatePet(ctx context.Context, p Pet) (Pet, error)
	GetPet(ctx context.Context, id int64) (Pet, error)
	UpdatePet(ctx context.Context, p Pet) error
	DeletePet(ctx context.Context, id int64) error
	ListPetsByOwner(ctx context.Context, ownerID int64) ([]Pet, error)

	CreateAppointment(ctx context.Context, a Appointment) (Appointment, error)
	GetAppointment(ctx context.Context, id int64) (Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
	ListAppointmentsByUser(ctx context.Context, userID int64) ([]Appointment, error)
}
