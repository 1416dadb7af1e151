package gateway

import "context"

// Historias clínicas y vacunas: la UI ya las muestra, pero el backend todavía
// no publica endpoints reales (en el cliente original eran stubs). Definimos
// el mismo shape CRUD que pets/appointments y devolvemos ErrEndpointPending
// hasta tener contrato. No inventamos paths.
// TODO(backend): reemplazar por llamadas reales cuando exista el contrato de
// medical/vaccine logs.

// MedicalLog de una consulta.
type MedicalLog struct {
	ID          int64  `json:"id"`
	Reason      string `json:"reason"`
	Diagnostic  string `json:"diagnostic"`
	Treatment   string `json:"treatment"`
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD
}

// VaccineLog de una vacuna aplicada.
type VaccineLog struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Date      string `json:"date"`      // YYYY-MM-DD
	RenewDate string `json:"renewDate"` // YYYY-MM-DD
}

type MedicalLogsClient struct {
	g *Gateway
}

func (c *MedicalLogsClient) Add(ctx context.Context, petID int64, in MedicalLog) (MedicalLog, error) {
	return MedicalLog{}, ErrEndpointPending
}

func (c *MedicalLogsClient) ListByPet(ctx context.Context, petID int64) ([]MedicalLog, error) {
	return nil, ErrEndpointPending
}

func (c *MedicalLogsClient) Delete(ctx context.Context, id int64) error {
	return ErrEndpointPending
}

type VaccineLogsClient struct {
	g *Gateway
}

func (c *VaccineLogsClient) Add(ctx context.Context, petID int64, in VaccineLog) (VaccineLog, error) {
	return VaccineLog{}, ErrEndpointPending
}

func (c *VaccineLogsClient) ListByPet(ctx context.Context, petID int64) ([]VaccineLog, error) {
	return nil, ErrEndpointPending
}

func (c *VaccineLogsClient) Delete(ctx context.Context, id int64) error {
	return ErrEndpointPending
}
