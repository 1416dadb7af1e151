package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// AnimalType define las especies soportadas.
type AnimalType string

const (
	TypeDog     AnimalType = "DOG"
	TypeCat     AnimalType = "CAT"
	TypeBird    AnimalType = "BIRD"
	TypeRabbit  AnimalType = "RABBIT"
	TypeHamster AnimalType = "HAMSTER"
	TypeFish    AnimalType = "FISH"
	TypeOther   AnimalType = "OTHER"
)

// Pet según lo transfiere el backend. El owner no viaja en el payload:
// el backend lo infiere de la sesión.
type Pet struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Image       string     `json:"image,omitempty"` // base64
	ImageType   string     `json:"imageType,omitempty"`
	IsMale      bool       `json:"isMale"`
	DateOfBirth time.Time  `json:"dateOfBirth"`
	Breed       string     `json:"breed"`
	Weight      float64    `json:"weight"`
	Type        AnimalType `json:"type"`
}

// PetInput son los campos que el cliente manda en add/update.
type PetInput struct {
	Name        string     `json:"name"`
	Image       string     `json:"image,omitempty"`
	ImageType   string     `json:"imageType,omitempty"`
	IsMale      bool       `json:"isMale"`
	DateOfBirth time.Time  `json:"dateOfBirth"`
	Breed       string     `json:"breed"`
	Weight      float64    `json:"weight"`
	Type        AnimalType `json:"type"`
}

// PetsClient opera sobre /pets. Session-scoped: no recibe user id.
type PetsClient struct {
	g *Gateway
}

// Add da de alta una mascota. El backend responde 201 con la entidad creada.
func (c *PetsClient) Add(ctx context.Context, in PetInput) (Pet, error) {
	const op = "pets.Add"

	resp, err := c.g.do(ctx, op, http.MethodPost, "/pets/add", nil, in)
	if err != nil {
		return Pet{}, err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		// sigue abajo
	case http.StatusBadRequest:
		return Pet{}, httpErr(op, resp.StatusCode, "Please check the pet details and try again.")
	case http.StatusUnauthorized:
		return Pet{}, httpErr(op, resp.StatusCode, msgSessionOut)
	default:
		return Pet{}, httpErr(op, resp.StatusCode, "")
	}

	var p Pet
	if err := resp.DecodeJSON(&p); err != nil {
		return Pet{}, shapeErr(op, "created pet response is not valid json")
	}
	return p, nil
}

// Update reemplaza los campos de la mascota id.
// Un 404 acá casi siempre significa que la borraron en otra pestaña.
func (c *PetsClient) Update(ctx context.Context, id int64, in PetInput) (Pet, error) {
	const op = "pets.Update"

	resp, err := c.g.do(ctx, op, http.MethodPut, fmt.Sprintf("/pets/%d", id), nil, in)
	if err != nil {
		return Pet{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// sigue abajo
	case http.StatusNotFound:
		return Pet{}, httpErr(op, resp.StatusCode, "This pet no longer exists.")
	case http.StatusBadRequest:
		return Pet{}, httpErr(op, resp.StatusCode, "Please check the pet details and try again.")
	case http.StatusUnauthorized:
		return Pet{}, httpErr(op, resp.StatusCode, msgSessionOut)
	default:
		return Pet{}, httpErr(op, resp.StatusCode, "")
	}

	var p Pet
	if err := resp.DecodeJSON(&p); err != nil {
		return Pet{}, shapeErr(op, "updated pet response is not valid json")
	}
	return p, nil
}

// Delete borra la mascota. Cualquier 2xx vale; el resto se propaga clasificado.
func (c *PetsClient) Delete(ctx context.Context, id int64) error {
	const op = "pets.Delete"

	resp, err := c.g.do(ctx, op, http.MethodDelete, fmt.Sprintf("/pets/%d", id), nil, nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return httpErr(op, resp.StatusCode, "")
	}
	return nil
}

// ListMine trae las mascotas del usuario logueado.
// 204 => lista vacía sin error. 200 con body que no es array => error de
// formato, nunca se coerciona a lista vacía.
func (c *PetsClient) ListMine(ctx context.Context) ([]Pet, error) {
	const op = "pets.ListMine"

	resp, err := c.g.do(ctx, op, http.MethodGet, "/pets/all", nil, nil)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// sigue abajo
	case http.StatusNoContent:
		return []Pet{}, nil
	case http.StatusUnauthorized:
		return nil, httpErr(op, resp.StatusCode, msgSessionOut)
	default:
		return nil, httpErr(op, resp.StatusCode, "")
	}

	if !resp.IsArray() {
		return nil, shapeErr(op, "expected array of pets")
	}

	out := make([]Pet, 0)
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, shapeErr(op, "pets array has unexpected element shape")
	}
	return out, nil
}

// GetByID trae una mascota puntual.
func (c *PetsClient) GetByID(ctx context.Context, id int64) (Pet, error) {
	const op = "pets.GetByID"

	resp, err := c.g.do(ctx, op, http.MethodGet, fmt.Sprintf("/pets/%d", id), nil, nil)
	if err != nil {
		return Pet{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// sigue abajo
	case http.StatusNotFound:
		return Pet{}, httpErr(op, resp.StatusCode, "Pet not found.")
	default:
		return Pet{}, httpErr(op, resp.StatusCode, "")
	}

	var p Pet
	if err := resp.DecodeJSON(&p); err != nil {
		return Pet{}, shapeErr(op, "pet response is not valid json")
	}
	return p, nil
}
