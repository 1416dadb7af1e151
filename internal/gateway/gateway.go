package gateway

import (
	"context"
	"errors"
	"net/url"

	"pawpal-client/internal/platform/httpclient"
	"pawpal-client/internal/platform/logger"
	"pawpal-client/internal/ports/session"
)

// Gateway concentra toda la comunicación UI <-> backend: transporte con auth,
// un cliente por recurso, y la clasificación de resultados.
// Estado compartido (sesión) entra por constructor, nada de singletons.
type Gateway struct {
	http     *httpclient.Client
	sessions session.Store
	log      logger.Logger

	Auth         *AuthClient
	Users        *UsersClient
	Pets         *PetsClient
	Appointments *AppointmentsClient
	MedicalLogs  *MedicalLogsClient
	VaccineLogs  *VaccineLogsClient
}

// New arma el gateway. sessions es obligatorio: el interceptor lee de ahí.
func New(cfg Config, sessions session.Store, log logger.Logger) (*Gateway, error) {
	if sessions == nil {
		return nil, errors.New("gateway: session store required")
	}
	if log == nil {
		log = logger.Nop()
	}

	hc, err := httpclient.NewWithTransport(cfg.BaseURL, cfg.Timeout, newAuthTransport(nil, sessions))
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		http:     hc,
		sessions: sessions,
		log:      log.With(map[string]any{"component": "gateway"}),
	}

	g.Auth = &AuthClient{g: g}
	g.Users = &UsersClient{g: g}
	g.Pets = &PetsClient{g: g}
	g.Appointments = &AppointmentsClient{
		g:               g,
		defaultDuration: cfg.AppointmentDuration,
		defaultCost:     cfg.AppointmentBaseCost,
	}
	g.MedicalLogs = &MedicalLogsClient{g: g}
	g.VaccineLogs = &VaccineLogsClient{g: g}

	return g, nil
}

// Session devuelve la sesión vigente (proxy del store inyectado).
func (g *Gateway) Session() session.Session {
	return g.sessions.Current()
}

// do centraliza el envío + clasificación de fallos de transporte.
// Cualquier respuesta HTTP (incluidas las de error) vuelve al caller.
func (g *Gateway) do(ctx context.Context, op, method, path string, query url.Values, in any) (*httpclient.Response, error) {
	resp, err := g.http.Do(ctx, method, path, query, in)
	if err != nil {
		var te *httpclient.TransportError
		if errors.As(err, &te) {
			g.log.Warn("request failed without response", map[string]any{
				"op": op, "method": method, "path": path, "cause": te.Err.Error(),
			})
			return nil, networkErr(op, te)
		}
		// error de armado del request (URL, marshal): bug local, se propaga crudo
		return nil, err
	}

	g.log.Debug("request done", map[string]any{
		"op": op, "method": method, "path": path, "status": resp.StatusCode,
	})
	return resp, nil
}
