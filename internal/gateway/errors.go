package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind clasifica el fallo de una operación del gateway.
// Los callers ramifican por Kind/StatusCode, nunca por el texto del error.
type Kind int

const (
	// KindNetwork: el request nunca recibió respuesta (offline, DNS, server caído).
	KindNetwork Kind = iota + 1
	// KindHTTP: llegó respuesta con status no esperado por la operación.
	KindHTTP
	// KindDataShape: respuesta 2xx cuyo body no tiene la forma esperada.
	KindDataShape
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindDataShape:
		return "data-shape"
	default:
		return "unknown"
	}
}

// ErrEndpointPending: la operación tiene contrato definido en el cliente pero
// el backend todavía no publica el endpoint. No inventamos paths.
var ErrEndpointPending = errors.New("gateway: backend endpoint not available yet")

// Error es el fallo clasificado de una operación.
// Message es el texto listo para publicar en el alert channel.
type Error struct {
	Kind       Kind
	StatusCode int // solo con KindHTTP
	Op         string
	Message    string
	err        error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.err)
	}
	if e.Kind == KindHTTP {
		return fmt.Sprintf("%s: %s: status=%d", e.Op, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.err }

// IsStatus reporta si el error es HTTP con ese status exacto.
func (e *Error) IsStatus(code int) bool {
	return e != nil && e.Kind == KindHTTP && e.StatusCode == code
}

// AsError extrae un *Error del árbol de wrapping.
func AsError(err error) (*Error, bool) {
	var ge *Error
	ok := errors.As(err, &ge)
	return ge, ok
}

const (
	msgNetwork    = "Network error. Please try again later."
	msgGeneric    = "Operation failed. Please try again."
	msgServer     = "Server error. Please try again later."
	msgSessionOut = "Your session has expired. Please log in again."
)

func networkErr(op string, cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Op:      op,
		Message: msgNetwork,
		err:     cause,
	}
}

func shapeErr(op, detail string) *Error {
	return &Error{
		Kind:    KindDataShape,
		Op:      op,
		Message: "Unexpected data received from the server.",
		err:     errors.New(detail),
	}
}

// httpErr arma el error HTTP con el mensaje específico de la operación si lo
// hay; si no, cae al mapeo genérico por rango de status.
func httpErr(op string, status int, message string) *Error {
	if message == "" {
		message = fallbackMessage(status)
	}
	return &Error{
		Kind:       KindHTTP,
		StatusCode: status,
		Op:         op,
		Message:    message,
	}
}

func fallbackMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return msgSessionOut
	case status >= 500:
		return msgServer
	default:
		return msgGeneric
	}
}
