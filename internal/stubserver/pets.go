package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type petInput struct {
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	ImageType   string    `json:"imageType"`
	IsMale      bool      `json:"isMale"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Breed       string    `json:"breed"`
	Weight      float64   `json:"weight"`
	Type        string    `json:"type"`
}

func (in petInput) validate() string {
	if strings.TrimSpace(in.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(in.Type) == "" {
		return "type is required"
	}
	if in.Weight < 0 {
		return "weight must be >= 0"
	}
	return ""
}

func (s *Server) handleAddPet(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var in petInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := in.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p, err := s.store.CreatePet(r.Context(), Pet{
		OwnerID:     claims.UserID,
		Name:        strings.TrimSpace(in.Name),
		Image:       in.Image,
		ImageType:   in.ImageType,
		IsMale:      in.IsMale,
		DateOfBirth: in.DateOfBirth,
		Breed:       strings.TrimSpace(in.Breed),
		Weight:      in.Weight,
		Type:        strings.ToUpper(strings.TrimSpace(in.Type)),
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toPetResponse(p))
}

// handleListPets: 204 sin body cuando el usuario no tiene mascotas.
func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	items, err := s.store.ListPetsByOwner(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// ownedPet resuelve la mascota del path y chequea ownership.
// Mascota ajena => 404, no filtramos existencia.
func (s *Server) ownedPet(w http.ResponseWriter, r *http.Request, userID int64) (Pet, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid pet id", http.StatusBadRequest)
		return Pet{}, false
	}

	p, err := s.store.GetPet(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return Pet{}, false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return Pet{}, false
	}
	if p.OwnerID != userID {
		http.Error(w, "pet not found", http.StatusNotFound)
		return Pet{}, false
	}
	return p, true
}

func (s *Server) handleGetPet(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	p, ok := s.ownedPet(w, r, claims.UserID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPetResponse(p))
}

func (s *Server) handleUpdatePet(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	p, ok := s.ownedPet(w, r, claims.UserID)
	if !ok {
		return
	}

	var in petInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := in.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Image = in.Image
	p.ImageType = in.ImageType
	p.IsMale = in.IsMale
	p.DateOfBirth = in.DateOfBirth
	p.Breed = strings.TrimSpace(in.Breed)
	p.Weight = in.Weight
	p.Type = strings.ToUpper(strings.TrimSpace(in.Type))

	if err := s.store.UpdatePet(r.Context(), p); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toPetResponse(p))
}

func (s *Server) handleDeletePet(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	p, ok := s.ownedPet(w, r, claims.UserID)
	if !ok {
		return
	}

	if err := s.store.DeletePet(r.Context(), p.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
