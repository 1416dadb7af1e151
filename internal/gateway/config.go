package gateway

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config del gateway. La base URL viene del entorno, igual que el
// VITE_SERVER_URL del cliente original.
//
// Duración y costo base de turnos eran constantes del cliente; acá son
// configurables porque no está decidido si los fija el cliente o el backend.
// Queda flaggeado para el owner del backend.
type Config struct {
	BaseURL string        `env:"PAWPAL_SERVER_URL" env-default:"http://localhost:8080"`
	Timeout time.Duration `env:"PAWPAL_HTTP_TIMEOUT" env-default:"10s"`

	AppointmentDuration time.Duration `env:"PAWPAL_APPOINTMENT_DURATION" env-default:"30m"`
	AppointmentBaseCost float64       `env:"PAWPAL_APPOINTMENT_BASE_COST" env-default:"25.0"`
}

// LoadConfig lee la config desde variables de entorno.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("gateway: read config: %w", err)
	}
	return cfg, nil
}

// MustLoadConfig es LoadConfig que corta el arranque si la config es inválida.
func MustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load gateway config: %v", err))
	}
	return cfg
}
