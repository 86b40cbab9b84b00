package http

import (
	"net/http"

	"brandpulse/internal/auth"
	"brandpulse/internal/config"
	"brandpulse/internal/http/handler"
	mw "brandpulse/internal/http/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps are the constructed services the routes need. main wires them; tests
// can wire fakes.
type Deps struct {
	Auth     *handler.AuthHandler
	Brand    *handler.BrandHandler
	Insights *handler.InsightHandler
	Goals    *handler.GoalHandler
	Monitor  *handler.MonitorHandler
	LinkedIn *handler.LinkedInHandler
	Health   *handler.HealthHandler
}

func NewRouter(cfg config.Config, jwtSvc *auth.JWT, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", d.Health.Health)

	r.Post("/auth/register", d.Auth.Register)
	r.Post("/auth/login", d.Auth.Login)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Post("/brand/analyze", d.Brand.Analyze)
		r.Get("/brand/analysis/{id}", d.Brand.Analysis)

		r.Route("/mentor/insights", func(r chi.Router) {
			r.Get("/{id}", d.Insights.List) // {id} is a user id here
			r.Post("/{id}/feedback", d.Insights.Feedback)
			r.Put("/{id}/read", d.Insights.MarkRead)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/{id}/goals", d.Goals.Create)
			r.Get("/{id}/goals", d.Goals.List)
			r.Put("/goals/{id}/progress", d.Goals.Progress)
			r.Post("/goals/{id}/complete", d.Goals.Complete)
		})

		r.Get("/monitoring/settings", d.Monitor.Get)
		r.Put("/monitoring/settings", d.Monitor.Put)

		r.Post("/auth/linkedin/connect", d.LinkedIn.Connect)
	})

	return r
}
