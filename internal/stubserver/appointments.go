package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type appointmentInput struct {
	PetID           int64         `json:"petId"`
	Status          string        `json:"status"`
	LocalDateTime   localDateTime `json:"localDateTime"`
	DurationMinutes int           `json:"durationMinutes"`
	Cost            float64       `json:"cost"`
}

func (s *Server) handleAddAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var in appointmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if in.DurationMinutes <= 0 {
		http.Error(w, "durationMinutes must be > 0", http.StatusBadRequest)
		return
	}
	if time.Time(in.LocalDateTime).IsZero() {
		http.Error(w, "localDateTime is required", http.StatusBadRequest)
		return
	}

	// el turno tiene que ser para una mascota propia
	pet, err := s.store.GetPet(r.Context(), in.PetID)
	if err != nil || pet.OwnerID != claims.UserID {
		http.Error(w, "petId does not reference one of your pets", http.StatusBadRequest)
		return
	}

	status := in.Status
	if status == "" {
		status = "SCHEDULED"
	}

	a, err := s.store.CreateAppointment(r.Context(), Appointment{
		UserID:          claims.UserID,
		PetID:           in.PetID,
		Status:          status,
		Date:            time.Time(in.LocalDateTime),
		DurationMinutes: in.DurationMinutes,
		Cost:            in.Cost,
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	items, err := s.store.ListAppointmentsByUser(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// ownedAppointment: mismo criterio que pets, ajeno => 404.
func (s *Server) ownedAppointment(w http.ResponseWriter, r *http.Request, userID int64) (Appointment, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "appointmentID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return Appointment{}, false
	}

	a, err := s.store.GetAppointment(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return Appointment{}, false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return Appointment{}, false
	}
	if a.UserID != userID {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return Appointment{}, false
	}
	return a, true
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	a, ok := s.ownedAppointment(w, r, claims.UserID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentResponse(a))
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	a, ok := s.ownedAppointment(w, r, claims.UserID)
	if !ok {
		return
	}

	if err := s.store.DeleteAppointment(r.Context(), a.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
