package stubserver

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// pgStore es el mismo Store sobre Postgres (driver pgx via database/sql).
// Para el stub alcanza con un esquema mínimo creado al abrir.
type pgStore struct {
	db *sql.DB
}

// OpenPostgres abre el pool, lo prueba y asegura el esquema.
func OpenPostgres(dsn string) (Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &pgStore{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash BYTEA NOT NULL,
			photo TEXT NOT NULL DEFAULT '',
			photo_type TEXT NOT NULL DEFAULT '',
			password_attempts INT NOT NULL DEFAULT 0,
			is_new BOOLEAN NOT NULL DEFAULT TRUE,
			roles TEXT NOT NULL DEFAULT 'USER'
		);
		CREATE TABLE IF NOT EXISTS pets (
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			image_type TEXT NOT NULL DEFAULT '',
			is_male BOOLEAN NOT NULL,
			date_of_birth TIMESTAMPTZ,
			breed TEXT NOT NULL DEFAULT '',
			weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			type TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS appointments (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			pet_id BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			duration_minutes INT NOT NULL,
			cost DOUBLE PRECISION NOT NULL
		);
	`)
	return err
}

// roles como texto separado por coma: suficiente para el stub
func joinRoles(roles []string) string { return strings.Join(roles, ",") }

func splitRoles(roles string) []string {
	if strings.TrimSpace(roles) == "" {
		return []string{}
	}
	return strings.Split(roles, ",")
}

func (s *pgStore) CreateUser(ctx context.Context, u User) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, photo, photo_type, password_attempts, is_new, roles)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`,
		u.FirstName, u.LastName, normEmail(u.Email), u.PasswordHash,
		u.Photo, u.PhotoType, u.PasswordAttempts, u.IsNew, joinRoles(u.Roles),
	)

	if err := row.Scan(&u.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, err
	}
	return u, nil
}

const userColumns = `id, first_name, last_name, email, password_hash, photo, photo_type, password_attempts, is_new, roles`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var roles string
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Photo, &u.PhotoType, &u.PasswordAttempts, &u.IsNew, &roles,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.Roles = splitRoles(roles)
	return u, nil
}

func (s *pgStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, normEmail(email))
	return scanUser(row)
}

func (s *pgStore) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *pgStore) UpdateUser(ctx context.Context, u User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, password_hash = $4,
			photo = $5, photo_type = $6, password_attempts = $7, is_new = $8, roles = $9
		WHERE id = $1
	`,
		u.ID, u.FirstName, u.LastName, u.PasswordHash,
		u.Photo, u.PhotoType, u.PasswordAttempts, u.IsNew, joinRoles(u.Roles),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) CreatePet(ctx context.Context, p Pet) (Pet, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO pets (owner_id, name, image, image_type, is_male, date_of_birth, breed, weight, type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		p.OwnerID, p.Name, p.Image, p.ImageType, p.IsMale, toNullTime(p.DateOfBirth), p.Breed, p.Weight, p.Type,
	)
	if err := row.Scan(&p.ID); err != nil {
		return Pet{}, err
	}
	return p, nil
}

const petColumns = `id, owner_id, name, image, image_type, is_male, date_of_birth, breed, weight, type`

func scanPet(row interface{ Scan(...any) error }) (Pet, error) {
	var p Pet
	var dob sql.NullTime
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Image, &p.ImageType,
		&p.IsMale, &dob, &p.Breed, &p.Weight, &p.Type,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	if dob.Valid {
		p.DateOfBirth = dob.Time
	}
	return p, nil
}

func (s *pgStore) GetPet(ctx context.Context, id int64) (Pet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	return scanPet(row)
}

func (s *pgStore) UpdatePet(ctx context.Context, p Pet) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pets
		SET name = $2, image = $3, image_type = $4, is_male = $5,
			date_of_birth = $6, breed = $7, weight = $8, type = $9
		WHERE id = $1
	`,
		p.ID, p.Name, p.Image, p.ImageType, p.IsMale, toNullTime(p.DateOfBirth), p.Breed, p.Weight, p.Type,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeletePet(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) ListPetsByOwner(ctx context.Context, ownerID int64) ([]Pet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE owner_id = $1 ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *pgStore) CreateAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO appointments (user_id, pet_id, status, date, duration_minutes, cost)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`,
		a.UserID, a.PetID, a.Status, a.Date, a.DurationMinutes, a.Cost,
	)
	if err := row.Scan(&a.ID); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

const appointmentColumns = `id, user_id, pet_id, status, date, duration_minutes, cost`

func scanAppointment(row interface{ Scan(...any) error }) (Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.PetID, &a.Status, &a.Date, &a.DurationMinutes, &a.Cost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	return a, nil
}

func (s *pgStore) GetAppointment(ctx context.Context, id int64) (Appointment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

func (s *pgStore) DeleteAppointment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) ListAppointmentsByUser(ctx context.Context, userID int64) ([]Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE user_id = $1 ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// date_of_birth es nullable; time cero => NULL
func toNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
