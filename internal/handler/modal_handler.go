package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"meeting-dashboard/internal/session"
)

func (h *Handler) OpenModal(w http.ResponseWriter, r *http.Request) {
	h.toggleModal(w, r, true)
}

func (h *Handler) CloseModal(w http.ResponseWriter, r *http.Request) {
	h.toggleModal(w, r, false)
}

func (h *Handler) toggleModal(w http.ResponseWriter, r *http.Request, open bool) {
	m, ok := session.ParseModal(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.with(r, func(g *session.Gate) {
		if !g.LoggedIn {
			return
		}
		if open {
			g.Open(m)
		} else {
			g.Close(m)
		}
	})
	back(w, r)
}
