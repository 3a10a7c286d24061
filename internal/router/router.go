package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"resolvewise/internal/config"
	"resolvewise/internal/handlers"
	"resolvewise/internal/middleware"
	"resolvewise/internal/models"
	"resolvewise/internal/service"
	"resolvewise/internal/views"
)

func New(log zerolog.Logger, svc *service.Service, render *views.Renderer, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.WithAuth(cfg))
	r.Use(httprate.LimitByIP(200, time.Minute))

	// Health
	r.Get("/healthz", handlers.Health())

	vh := handlers.NewViewHTTP(svc, render, cfg, log)
	eh := handlers.NewEventsHTTP(svc, log)

	// HTML views
	r.Get("/login", vh.Login())
	r.With(httprate.LimitByIP(10, time.Minute)).Post("/login", vh.SignIn())
	r.Get("/logout", vh.SignOut())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/", vh.Dashboard())
		r.Get("/tickets/new", vh.NewTicket())
		r.Post("/tickets", vh.CreateTicket())
		r.Get("/tickets/{id}", vh.TicketDetail())
		r.Post("/tickets/{id}/comments", vh.PostComment())
		r.Get("/tickets/{id}/events", eh.TicketComments())
		r.Get("/account", vh.Account())
		r.Post("/account", vh.UpdateAccount())
	})

	// JSON API
	ah := handlers.NewAuthHTTP(svc, cfg)
	th := handlers.NewTicketHTTP(svc)
	ach := handlers.NewAccountHTTP(svc, cfg)
	rh := handlers.NewReportsHTTP(svc)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.Origin},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))

		r.With(httprate.LimitByIP(10, time.Minute)).Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", ah.Me())
			r.Patch("/account", ach.Update())
			r.Get("/reports/summary", rh.Summary())

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", th.List())
				r.Post("/", th.Create())
				r.Get("/{id}", th.Get())
				r.Post("/{id}/comments", th.AddComment())
			})

			r.With(middleware.RequireRoles(models.RoleAgent)).
				Get("/users", ach.ListUsers())
		})
	})

	return r
}
