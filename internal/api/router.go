package api

import (
	"net/http"
	"safecity-service/internal/api/handlers"
	"safecity-service/internal/ports"
	"safecity-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Dependencies the HTTP layer needs from the composition root.
type Deps struct {
	AppName  string
	Tokens   ports.TokenIssuer
	Finder   *services.NearbyPlaceFinder
	Auth     *services.AuthService
	Profiles *services.ProfileService
	Tips     *services.TipService
	Reports  *services.ReportService
	Advice   *services.AdviceService
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(d Deps) http.Handler {
	authHandler := &handlers.AuthHandler{Auth: d.Auth}
	locationHandler := &handlers.LocationHandler{
		Finder: d.Finder,
		Tips:   d.Tips,
		Advice: d.Advice,
	}
	userHandler := &handlers.UserHandler{Profiles: d.Profiles, Tips: d.Tips}
	reportHandler := &handlers.ReportHandler{Reports: d.Reports}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware, middleware.Recoverer, corsMiddleware)

	r.Get("/", handlers.Root(d.AppName))
	r.Get("/health", handlers.Health)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/verify-otp", authHandler.VerifyOTP)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth(d.Tokens))

		r.Route("/api/location", func(r chi.Router) {
			r.Post("/nearby", locationHandler.Nearby)
			r.Post("/tip", locationHandler.SubmitTip)
			r.Post("/advice", locationHandler.Advise)
		})

		r.Route("/api/user", func(r chi.Router) {
			r.Get("/profile", userHandler.GetProfile)
			r.Put("/profile", userHandler.UpdateProfile)
			r.Delete("/profile", userHandler.DeleteProfile)
			r.Get("/tips", userHandler.ListTips)
			r.Put("/tips", userHandler.UpdateTip)
			r.Delete("/tips", userHandler.DeleteTip)
			r.Put("/location", userHandler.UpdateLocation)
		})

		r.Route("/api/report", func(r chi.Router) {
			r.Post("/", reportHandler.Create)
			r.Post("/nearby", reportHandler.Nearby)
		})
	})

	return r
}
