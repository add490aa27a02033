package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"meeting-dashboard/internal/config"
	"meeting-dashboard/internal/handler"
	"meeting-dashboard/internal/middleware"
	"meeting-dashboard/internal/session"
)

func New(log zerolog.Logger, cfg config.Config, h *handler.Handler, reg *session.Registry, rl *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(httprate.LimitByIP(cfg.GlobalRatePerMin, time.Minute))

	r.Get("/healthz", h.Healthz)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(log, reg, cfg.JWTSecret, cfg.SessionTTL, cfg.SecureCookies))

		r.Get("/", h.Index)
		r.Post("/view/toggle", h.ToggleView)
		r.Post("/logout", h.Logout)

		r.Route("/modals/{name}", func(r chi.Router) {
			r.Post("/open", h.OpenModal)
			r.Post("/close", h.CloseModal)
		})

		r.Get("/check-meetings", h.CheckMeetings)
		r.Get("/meetings/export.xlsx", h.ExportMeetings)

		// form posts
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(rl))
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/meetings", h.SubmitMeeting)
			r.Post("/videos", h.UploadVideo)
		})
	})

	return r
}
