package gateway

import (
	"net/http"

	"github.com/google/uuid"

	"pawpal-client/internal/ports/session"
)

// authTransport es el interceptor de auth: corre exactamente una vez por
// request, síncrono respecto del dispatch.
// - Con token en el session store => Authorization: Bearer <token>.
// - Sin token => el header NO viaja (jamás vacío ni viejo).
// El token se lee en el momento del envío, no al construir el gateway.
type authTransport struct {
	base     http.RoundTripper
	sessions session.Store
}

func newAuthTransport(base http.RoundTripper, sessions session.Store) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, sessions: sessions}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers no deben mutar el request original
	out := req.Clone(req.Context())

	out.Header.Del("Authorization")
	if cur := t.sessions.Current(); cur.HasToken() {
		out.Header.Set("Authorization", "Bearer "+cur.Token)
	}

	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}

	return t.base.RoundTrip(out)
}
