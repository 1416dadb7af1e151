package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// AppointmentStatus del turno veterinario.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCanceled  AppointmentStatus = "CANCELED"
)

// LocalDateTime serializa como "2006-01-02T15:04:05" (sin zona), que es lo
// que el backend espera en el campo localDateTime.
type LocalDateTime time.Time

const localDateTimeLayout = "2006-01-02T15:04:05"

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(localDateTimeLayout) + `"`), nil
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = LocalDateTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		// algunos backends devuelven con fracción de segundo
		parsed, err = time.Parse(localDateTimeLayout+".999999999", s)
		if err != nil {
			return fmt.Errorf("invalid local date time %q: %w", s, err)
		}
	}
	*t = LocalDateTime(parsed)
	return nil
}

func (t LocalDateTime) Time() time.Time { return time.Time(t) }

// Appointment según lo transfiere el backend.
type Appointment struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"userId"`
	PetID           int64             `json:"petId"`
	Status          AppointmentStatus `json:"status"`
	LocalDateTime   LocalDateTime     `json:"localDateTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Cost            float64           `json:"cost"`
}

// AppointmentInput para el alta de un turno.
// Duration/Cost en cero caen a los defaults de Config (hoy 30m / 25.0; ver
// nota en Config sobre dónde debería vivir esta regla).
type AppointmentInput struct {
	PetID    int64
	Date     time.Time
	Duration time.Duration
	Cost     float64
}

type addAppointmentRequest struct {
	PetID           int64             `json:"petId"`
	Status          AppointmentStatus `json:"status"`
	LocalDateTime   LocalDateTime     `json:"localDateTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Cost            float64           `json:"cost"`
}

// AppointmentsClient opera sobre /api/veterinary-appointments.
type AppointmentsClient struct {
	g *Gateway

	defaultDuration time.Duration
	defaultCost     float64
}

// Add agenda un turno nuevo. Siempre nace SCHEDULED.
func (c *AppointmentsClient) Add(ctx context.Context, in AppointmentInput) (Appointment, error) {
	const op = "appointments.Add"

	duration := in.Duration
	if duration <= 0 {
		duration = c.defaultDuration
	}
	cost := in.Cost
	if cost <= 0 {
		cost = c.defaultCost
	}

	resp, err := c.g.do(ctx, op, http.MethodPost, "/api/veterinary-appointments/add", nil, addAppointmentRequest{
		PetID:           in.PetID,
		Status:          StatusScheduled,
		LocalDateTime:   LocalDateTime(in.Date),
		DurationMinutes: int(duration.Minutes()),
		Cost:            cost,
	})
	if err != nil {
		return Appointment{}, err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		// sigue abajo
	case http.StatusBadRequest:
		return Appointment{}, httpErr(op, resp.StatusCode, "Please check the appointment details and try again.")
	case http.StatusUnauthorized:
		return Appointment{}, httpErr(op, resp.StatusCode, msgSessionOut)
	default:
		return Appointment{}, httpErr(op, resp.StatusCode, "")
	}

	var a Appointment
	if err := resp.DecodeJSON(&a); err != nil {
		return Appointment{}, shapeErr(op, "created appointment response is not valid json")
	}
	return a, nil
}

// List trae todos los turnos del usuario logueado.
// Misma regla de forma que pets: 200 no-array es error de formato.
func (c *AppointmentsClient) List(ctx context.Context) ([]Appointment, error) {
	const op = "appointments.List"

	resp, err := c.g.do(ctx, op, http.MethodGet, "/api/veterinary-appointments/all", nil, nil)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// sigue abajo
	case http.StatusNoContent:
		return []Appointment{}, nil
	case http.StatusUnauthorized:
		return nil, httpErr(op, resp.StatusCode, msgSessionOut)
	default:
		return nil, httpErr(op, resp.StatusCode, "")
	}

	if !resp.IsArray() {
		return nil, shapeErr(op, "expected array of appointments")
	}

	out := make([]Appointment, 0)
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, shapeErr(op, "appointments array has unexpected element shape")
	}
	return out, nil
}

// GetByID trae un turno puntual.
func (c *AppointmentsClient) GetByID(ctx context.Context, id int64) (Appointment, error) {
	const op = "appointments.GetByID"

	resp, err := c.g.do(ctx, op, http.MethodGet, fmt.Sprintf("/api/veterinary-appointments/%d", id), nil, nil)
	if err != nil {
		return Appointment{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// sigue abajo
	case http.StatusNotFound:
		return Appointment{}, httpErr(op, resp.StatusCode, "Appointment not found.")
	default:
		return Appointment{}, httpErr(op, resp.StatusCode, "")
	}

	var a Appointment
	if err := resp.DecodeJSON(&a); err != nil {
		return Appointment{}, shapeErr(op, "appointment response is not valid json")
	}
	return a, nil
}

// Delete cancela/borra el turno. Cualquier 2xx vale.
func (c *AppointmentsClient) Delete(ctx context.Context, id int64) error {
	const op = "appointments.Delete"

	resp, err := c.g.do(ctx, op, http.MethodDelete, fmt.Sprintf("/api/veterinary-appointments/%d", id), nil, nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return httpErr(op, resp.StatusCode, "")
	}
	return nil
}
