package gateway

import (
	"context"
	"net/http"
	"strings"

	"pawpal-client/internal/ports/session"
)

// AuthClient maneja registro y sesión contra /auth.
type AuthClient struct {
	g *Gateway
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register crea la cuenta. El backend manda la contraseña inicial por otro
// canal; acá no viaja password.
func (c *AuthClient) Register(ctx context.Context, firstName, lastName, email string) error {
	const op = "auth.Register"

	resp, err := c.g.do(ctx, op, http.MethodPost, "/auth/register", nil, registerRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	})
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		return httpErr(op, resp.StatusCode, "An account with this email already exists.")
	default:
		return httpErr(op, resp.StatusCode, "")
	}
}

// Login autentica y persiste la sesión resultante.
// Antes de intentar, limpia cualquier sesión previa: un login fallido no puede
// dejar activo el token de otro usuario.
func (c *AuthClient) Login(ctx context.Context, email, password string) (session.Session, error) {
	const op = "auth.Login"

	if err := c.g.sessions.Clear(); err != nil {
		return session.Session{}, err
	}

	resp, err := c.g.do(ctx, op, http.MethodPost, "/auth/login", nil, loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return session.Session{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// sigue abajo
	case http.StatusUnauthorized:
		return session.Session{}, httpErr(op, resp.StatusCode, "Invalid email or password.")
	default:
		return session.Session{}, httpErr(op, resp.StatusCode, "Login failed. Please try again.")
	}

	var body loginResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return session.Session{}, shapeErr(op, "login response is not valid json")
	}
	if strings.TrimSpace(body.Token) == "" {
		return session.Session{}, shapeErr(op, "login response missing token")
	}

	sess := session.Session{
		Token:     body.Token,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	}
	if err := c.g.sessions.Save(sess); err != nil {
		return session.Session{}, err
	}

	c.g.log.Info("logged in", map[string]any{"email": email})
	return sess, nil
}

// Logout descarta la sesión local. No hay endpoint de logout en el backend:
// el token simplemente deja de usarse.
func (c *AuthClient) Logout() error {
	return c.g.sessions.Clear()
}
