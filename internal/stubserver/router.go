package stubserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pawpal-client/internal/platform/logger"
)

// Server agrupa store, secreto de firma y logger.
type Server struct {
	store  Store
	secret []byte
	log    logger.Logger
}

type Options struct {
	// Store del stub. Si es nil, memoria.
	Store Store

	// Secreto HS256 para los tokens. Obligatorio fuera de tests.
	JWTSecret []byte

	Logger logger.Logger
}

// NewRouter arma el handler completo del stub.
func NewRouter(opts Options) http.Handler {
	store := opts.Store
	if store == nil {
		store = NewMemStore()
	}
	secret := opts.JWTSecret
	if len(secret) == 0 {
		secret = []byte("pawpal-dev-secret")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		store:  store,
		secret: secret,
		log:    log.With(map[string]any{"component": "stubserver"}),
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(authContext(s.secret))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", s.handleRegister)
		ar.Post("/login", s.handleLogin)
	})

	r.Route("/users", func(ur chi.Router) {
		ur.Get("/details", s.handleUserDetails)
		ur.Put("/update-image", s.handleUpdateImage)
		ur.Post("/reset", s.handleResetPassword)
	})

	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/add", s.handleAddPet)
		pr.Get("/all", s.handleListPets)
		pr.Get("/{petID}", s.handleGetPet)
		pr.Put("/{petID}", s.handleUpdatePet)
		pr.Delete("/{petID}", s.handleDeletePet)
	})

	r.Route("/api/veterinary-appointments", func(vr chi.Router) {
		vr.Post("/add", s.handleAddAppointment)
		vr.Get("/all", s.handleListAppointments)
		vr.Get("/{appointmentID}", s.handleGetAppointment)
		vr.Delete("/{appointmentID}", s.handleDeleteAppointment)
	})

	return r
}
