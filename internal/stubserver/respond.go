package stubserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// localDateTime emite "2006-01-02T15:04:05" (sin zona), el formato del campo
// localDateTime que consume el cliente.
type localDateTime time.Time

const localDateTimeLayout = "2006-01-02T15:04:05"

func (t localDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(localDateTimeLayout) + `"`), nil
}

func (t *localDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = localDateTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return err
	}
	*t = localDateTime(parsed)
	return nil
}

type userResponse struct {
	ID               int64    `json:"id"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	Photo            string   `json:"photo,omitempty"`
	PhotoType        string   `json:"photoType,omitempty"`
	PasswordAttempts int      `json:"passwordAttempts"`
	IsNew            bool     `json:"isNew"`
	Roles            []string `json:"roles"`
}

func toUserResponse(u User) userResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return userResponse{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Photo:            u.Photo,
		PhotoType:        u.PhotoType,
		PasswordAttempts: u.PasswordAttempts,
		IsNew:            u.IsNew,
		Roles:            roles,
	}
}

type petResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image,omitempty"`
	ImageType   string    `json:"imageType,omitempty"`
	IsMale      bool      `json:"isMale"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Breed       string    `json:"breed"`
	Weight      float64   `json:"weight"`
	Type        string    `json:"type"`
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Name:        p.Name,
		Image:       p.Image,
		ImageType:   p.ImageType,
		IsMale:      p.IsMale,
		DateOfBirth: p.DateOfBirth,
		Breed:       p.Breed,
		Weight:      p.Weight,
		Type:        p.Type,
	}
}

type appointmentResponse struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"userId"`
	PetID           int64         `json:"petId"`
	Status          string        `json:"status"`
	LocalDateTime   localDateTime `json:"localDateTime"`
	DurationMinutes int           `json:"durationMinutes"`
	Cost            float64       `json:"cost"`
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		PetID:           a.PetID,
		Status:          a.Status,
		LocalDateTime:   localDateTime(a.Date),
		DurationMinutes: a.DurationMinutes,
		Cost:            a.Cost,
	}
}
