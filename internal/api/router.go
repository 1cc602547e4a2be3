package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shikshamitra/platform/internal/site"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Basic request logging
	r.Use(middleware.Recoverer) // Recover from panics
	r.Use(middleware.StripSlashes)
	// No Timeout middleware: the support-chat exchange deliberately runs
	// without a deadline.

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Brand-parameterized pages, all through the shared layout shell.
	r.Get("/", h.PageHandler("home"))
	r.Get("/features", h.PageHandler("features"))
	r.Get("/about", h.PageHandler("about"))
	r.Get("/how-it-works", h.PageHandler("how-it-works"))
	r.Get("/contact", h.PageHandler("contact"))
	r.Get("/help", h.PageHandler("help"))
	r.Get("/login", h.PageHandler("login"))
	r.Get("/signup", h.PageHandler("signup"))
	r.Get("/confirm", h.PageHandler("confirm"))
	r.Get("/dashboard", h.RequireSession(h.PageHandler("dashboard")))

	// Auth form actions and the OAuth/confirmation flow.
	r.Post("/actions/signin", h.SignInAction)
	r.Post("/actions/signup", h.SignUpAction)
	r.Post("/actions/signout", h.SignOutAction)
	r.Get("/auth/oauth/{provider}", h.OAuthStartHandler)
	r.Get("/auth/confirm", h.AuthConfirmHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Post("/help/chat", h.ChatHandler)
		r.Post("/contact", h.ContactHandler)
	})

	r.Handle("/static/*", site.StaticHandler())

	return r
}
