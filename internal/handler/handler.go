package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"meeting-dashboard/internal/ledger"
	"meeting-dashboard/internal/middleware"
	"meeting-dashboard/internal/session"
	"meeting-dashboard/internal/video"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	ledger   *ledger.Ledger
	sessions *session.Registry
	videos   *video.Store
	storage  pinger
	log      zerolog.Logger
	pages    *pages
}

func New(l *ledger.Ledger, reg *session.Registry, videos *video.Store, storage pinger, log zerolog.Logger) *Handler {
	return &Handler{
		ledger:   l,
		sessions: reg,
		videos:   videos,
		storage:  storage,
		log:      log,
		pages:    loadPages(),
	}
}

// with runs fn on the request's gate. Requests whose session vanished are
// treated as logged out.
func (h *Handler) with(r *http.Request, fn func(g *session.Gate)) bool {
	return h.sessions.With(middleware.SessionID(r.Context()), fn)
}

func (h *Handler) loggedIn(r *http.Request) bool {
	var ok bool
	h.with(r, func(g *session.Gate) { ok = g.LoggedIn })
	return ok
}

func (h *Handler) snapshot(r *http.Request, fn func(g *session.Gate)) session.View {
	v := session.NewGate().Snapshot()
	h.with(r, func(g *session.Gate) {
		if fn != nil {
			fn(g)
		}
		v = g.Snapshot()
	})
	return v
}

func back(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
