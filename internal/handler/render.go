package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"golang.org/x/text/language"

	"meeting-dashboard/internal/i18n"
	"meeting-dashboard/internal/ledger"
	"meeting-dashboard/internal/model"
	"meeting-dashboard/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type pages struct {
	tmpl *template.Template
}

func loadPages() *pages {
	return &pages{tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

type card struct {
	Title string
	Modal session.Modal
	Color string
	Icon  string
}

var cards = []card{
	{"Schedule a Virtual Demo", session.ModalDemo, "blue", "video"},
	{"Check Meeting Schedules", session.ModalMeetings, "green", "calendar"},
	{"ML Payroll PRO Virtual Walkthrough", session.ModalVideo, "purple", "play"},
}

type page struct {
	View  session.View
	Lang  string
	Roles []model.Role
	Slots []string
	Cards []card

	DemoOpen     bool
	MeetingsOpen bool
	VideoOpen    bool

	Form      model.MeetingForm
	FormError string

	VideoTitle string
	VideoError string

	Meetings      []model.MeetingRequest
	MeetingCount  string
	MeetingsError string
}

func (h *Handler) newPage(v session.View, tag language.Tag) *page {
	return &page{
		View:         v,
		Lang:         tag.String(),
		Roles:        model.Roles,
		Slots:        model.TimeSlots,
		Cards:        cards,
		DemoOpen:     v.Open[session.ModalDemo],
		MeetingsOpen: v.Open[session.ModalMeetings],
		VideoOpen:    v.Open[session.ModalVideo],
	}
}

// dashboard builds the logged-in page, loading the ledger only when the
// meetings modal is showing.
func (h *Handler) dashboard(r *http.Request, v session.View, tag language.Tag) *page {
	p := h.newPage(v, tag)
	if p.MeetingsOpen {
		h.loadMeetings(r, p, tag)
	}
	return p
}

// loadMeetings fills the list section and reports whether the ledger was readable.
func (h *Handler) loadMeetings(r *http.Request, p *page, tag language.Tag) bool {
	ms, err := h.ledger.Read(r.Context())
	if err != nil {
		if errors.Is(err, ledger.ErrCorrupt) {
			p.MeetingsError = "Stored meeting data is unreadable. New requests cannot be saved until it is repaired."
		} else {
			p.MeetingsError = "Meetings could not be loaded."
		}
		h.log.Error().Err(err).Str("key", h.ledger.Key()).Msg("read ledger")
		return false
	}
	p.Meetings = ms
	p.MeetingCount = i18n.CountMeetings(tag, len(ms))
	return true
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, p *page) {
	var buf bytes.Buffer
	if err := h.pages.tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("render")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
