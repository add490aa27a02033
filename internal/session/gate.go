package session

import (
	"meeting-dashboard/internal/model"
)

type Modal string

const (
	ModalDemo     Modal = "demo"
	ModalMeetings Modal = "meetings"
	ModalVideo    Modal = "video"
)

var Modals = []Modal{ModalDemo, ModalMeetings, ModalVideo}

func ParseModal(s string) (Modal, bool) {
	for _, m := range Modals {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Gate is one visitor's view state: logged in or not, login or registration
// form, which dashboard modals are open, and toasts waiting to be shown.
// Login and registration never fail and no credentials are kept.
type Gate struct {
	LoggedIn    bool
	Registering bool
	Username    string
	Role        model.Role

	open   map[Modal]bool
	toasts []model.Notification
}

func NewGate() *Gate {
	return &Gate{Role: model.RoleClient, open: make(map[Modal]bool)}
}

func (g *Gate) Login(username, _ string) {
	g.LoggedIn = true
	g.Registering = false
	g.Username = username
	g.Notify(model.Notification{
		Title:       "Welcome back!",
		Description: g.Welcome(),
	})
}

// Register records the chosen role and returns to the login view. No
// account is created.
func (g *Gate) Register(_, _ string, role model.Role) {
	g.Role = role
	g.Registering = false
	g.Notify(model.Notification{
		Title:       "Registration successful!",
		Description: "You can now log in with your credentials",
	})
}

func (g *Gate) ToggleView() {
	if g.LoggedIn {
		return
	}
	g.Registering = !g.Registering
}

func (g *Gate) Logout() {
	*g = *NewGate()
}

func (g *Gate) Welcome() string {
	return "Logged in successfully as " + string(g.Role)
}

func (g *Gate) Open(m Modal)        { g.open[m] = true }
func (g *Gate) Close(m Modal)       { delete(g.open, m) }
func (g *Gate) IsOpen(m Modal) bool { return g.open[m] }

// DemoSubmitted hands over from the demo form to the meeting list.
func (g *Gate) DemoSubmitted() {
	g.Close(ModalDemo)
	g.Open(ModalMeetings)
}

func (g *Gate) Notify(n model.Notification) {
	g.toasts = append(g.toasts, n)
}

// Drain returns pending toasts and clears the queue.
func (g *Gate) Drain() []model.Notification {
	out := g.toasts
	g.toasts = nil
	return out
}

// View is a read-only copy of a Gate for rendering.
type View struct {
	LoggedIn    bool
	Registering bool
	Username    string
	Role        model.Role
	Open        map[Modal]bool
	Toasts      []model.Notification
}

// Snapshot copies the gate and drains its toasts.
func (g *Gate) Snapshot() View {
	open := make(map[Modal]bool, len(g.open))
	for m, v := range g.open {
		open[m] = v
	}
	return View{
		LoggedIn:    g.LoggedIn,
		Registering: g.Registering,
		Username:    g.Username,
		Role:        g.Role,
		Open:        open,
		Toasts:      g.Drain(),
	}
}
