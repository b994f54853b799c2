package router

import (
	"net/http"

	_ "virtual-pet/docs"
	"virtual-pet/internal/adapters/storage/memory"
	"virtual-pet/internal/domain/pets"
	"virtual-pet/internal/middleware"
	"virtual-pet/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // puede ser nil

	// Opcional: si viene, se usa tal cual. Si no, repo in-memory + service por defecto
	// (modo dev / tests).
	Pets *pets.Service
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	petsSvc := opts.Pets
	if petsSvc == nil {
		petsSvc = pets.NewService(memory.NewPetRepo(), pets.DefaultRules(), log)
	}

	pets.RegisterRoutes(r, petsSvc)

	return r
}
