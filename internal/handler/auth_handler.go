package handler

import (
	"net/http"

	"meeting-dashboard/internal/i18n"
	"meeting-dashboard/internal/model"
	"meeting-dashboard/internal/session"
)

// Index shows the login/registration view or, once logged in, the dashboard.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}

	v := h.snapshot(r, nil)
	if !v.LoggedIn {
		h.render(w, http.StatusOK, "login", h.newPage(v, tag))
		return
	}
	h.render(w, http.StatusOK, "dashboard", h.dashboard(r, v, tag))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	h.with(r, func(g *session.Gate) { g.Login(username, password) })
	h.log.Debug().Str("user", username).Msg("login")
	back(w, r)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	role, ok := model.ParseRole(r.PostFormValue("role"))
	if !ok {
		role = model.RoleClient
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	h.with(r, func(g *session.Gate) { g.Register(username, password, role) })
	h.log.Debug().Str("user", username).Str("role", string(role)).Msg("register")
	back(w, r)
}

func (h *Handler) ToggleView(w http.ResponseWriter, r *http.Request) {
	h.with(r, func(g *session.Gate) { g.ToggleView() })
	back(w, r)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.with(r, func(g *session.Gate) { g.Logout() })
	back(w, r)
}
