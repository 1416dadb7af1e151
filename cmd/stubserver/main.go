package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"pawpal-client/internal/platform/logger"
	"pawpal-client/internal/stubserver"
)

type config struct {
	Port      string `env:"PORT" env-default:"8080"`
	DBDSN     string `env:"DB_DSN"`
	JWTSecret string `env:"JWT_SECRET" env-default:"pawpal-dev-secret"`
}

func main() {
	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.NewFromEnv()

	// Sin DB_DSN corre en memoria, igual que el modo dev del servicio original.
	var store stubserver.Store
	if cfg.DBDSN != "" {
		opened, err := stubserver.OpenPostgres(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable, falling back to memory", map[string]any{"error": err.Error()})
		} else {
			store = opened
		}
	}

	r := stubserver.NewRouter(stubserver.Options{
		Store:     store,
		JWTSecret: []byte(cfg.JWTSecret),
		Logger:    log,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting stub server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
	}
}
