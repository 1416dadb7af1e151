package session

import "strings"

// Session es la sesión activa del cliente: el token bearer más los campos de
// display que la UI muestra sin re-consultar al backend.
// Hay a lo sumo una sesión activa por instancia del cliente.
type Session struct {
	Token     string
	FirstName string
	LastName  string
}

// HasToken reporta si hay un token presentable.
// Nunca se manda un Authorization vacío: o hay token o no hay header.
func (s Session) HasToken() bool {
	return strings.TrimSpace(s.Token) != ""
}

// IsZero reporta si la sesión está vacía (logout o nunca logueado).
func (s Session) IsZero() bool {
	return s.Token == "" && s.FirstName == "" && s.LastName == ""
}
