package gateway

import (
	"context"
	"net/http"
)

// User es la proyección read/write que el cliente tiene del usuario.
// El owner de los datos es el backend.
type User struct {
	ID               int64    `json:"id"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	Photo            string   `json:"photo,omitempty"` // base64
	PhotoType        string   `json:"photoType,omitempty"`
	PasswordAttempts int      `json:"passwordAttempts"`
	IsNew            bool     `json:"isNew"`
	Roles            []string `json:"roles"`
}

// UsersClient opera sobre /users. Todas las operaciones son session-scoped:
// el backend resuelve el usuario por el token, no por parámetro.
type UsersClient struct {
	g *Gateway
}

type updateImageRequest struct {
	Image     string `json:"image"` // base64
	ImageType string `json:"imageType"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// Details trae el perfil del usuario logueado.
func (c *UsersClient) Details(ctx context.Context) (User, error) {
	const op = "users.Details"

	resp, err := c.g.do(ctx, op, http.MethodGet, "/users/details", nil, nil)
	if err != nil {
		return User{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// sigue abajo
	case http.StatusNotFound:
		return User{}, httpErr(op, resp.StatusCode, "User not found.")
	default:
		return User{}, httpErr(op, resp.StatusCode, "")
	}

	var u User
	if err := resp.DecodeJSON(&u); err != nil {
		return User{}, shapeErr(op, "user details response is not valid json")
	}
	return u, nil
}

// UpdateImage sube la foto de perfil (base64 + tipo declarado aparte).
func (c *UsersClient) UpdateImage(ctx context.Context, imageBase64, imageType string) error {
	const op = "users.UpdateImage"

	resp, err := c.g.do(ctx, op, http.MethodPut, "/users/update-image", nil, updateImageRequest{
		Image:     imageBase64,
		ImageType: imageType,
	})
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return httpErr(op, resp.StatusCode, "Could not update your photo. Please try again.")
	}
	return nil
}

// ResetPassword fija una contraseña nueva para el usuario logueado.
func (c *UsersClient) ResetPassword(ctx context.Context, newPassword string) error {
	const op = "users.ResetPassword"

	resp, err := c.g.do(ctx, op, http.MethodPost, "/users/reset", nil, resetPasswordRequest{
		Password: newPassword,
	})
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return httpErr(op, resp.StatusCode, "The new password is not valid.")
	default:
		return httpErr(op, resp.StatusCode, "")
	}
}
