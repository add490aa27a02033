package handler

import (
	"bytes"
	"errors"
	"net/http"

	"meeting-dashboard/internal/export"
	"meeting-dashboard/internal/i18n"
	"meeting-dashboard/internal/ledger"
	"meeting-dashboard/internal/model"
	"meeting-dashboard/internal/session"
)

var fieldLabels = map[string]string{
	"companyName":   "Company Name",
	"contactPerson": "Contact Person",
	"contactNumber": "Contact Number",
	"meetingDate":   "Meeting Date",
	"meetingTime":   "Meeting Time",
	"clientEmails":  "Client Team Members' Email Addresses",
	"teamEmails":    "RMs/AMs Team Members' Email Addresses",
}

func formFromRequest(r *http.Request) model.MeetingForm {
	return model.MeetingForm{
		CompanyName:   r.PostFormValue("companyName"),
		ContactPerson: r.PostFormValue("contactPerson"),
		ContactNumber: r.PostFormValue("contactNumber"),
		MeetingDate:   r.PostFormValue("meetingDate"),
		MeetingTime:   r.PostFormValue("meetingTime"),
		ClientEmails:  r.PostFormValue("clientEmails"),
		TeamEmails:    r.PostFormValue("teamEmails"),
	}
}

// SubmitMeeting stores a demo request and moves the visitor to the meeting list.
func (h *Handler) SubmitMeeting(w http.ResponseWriter, r *http.Request) {
	if !h.loggedIn(r) {
		back(w, r)
		return
	}
	tag, _ := i18n.ResolveTag(r)
	form := formFromRequest(r)

	rec, err := h.ledger.Append(r.Context(), form, tag)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "The meeting request could not be saved."

		var fe *ledger.FieldError
		switch {
		case errors.As(err, &fe) && errors.Is(err, ledger.ErrInvalidSlot):
			status, msg = http.StatusUnprocessableEntity, "Please choose one of the listed time slots."
		case errors.As(err, &fe):
			status, msg = http.StatusUnprocessableEntity, "Please fill in "+fieldLabels[fe.Field]+"."
		case errors.Is(err, ledger.ErrCorrupt):
			msg = "Stored meeting data is unreadable, so nothing was saved."
			h.log.Error().Err(err).Msg("append meeting")
		default:
			h.log.Error().Err(err).Msg("append meeting")
		}

		v := h.snapshot(r, func(g *session.Gate) { g.Open(session.ModalDemo) })
		p := h.dashboard(r, v, tag)
		p.Form = form
		p.FormError = msg
		h.render(w, status, "dashboard", p)
		return
	}

	h.log.Info().Int64("id", rec.ID).Str("company", rec.CompanyName).Msg("meeting requested")
	h.with(r, func(g *session.Gate) {
		g.Notify(model.Notification{
			Title:       "Success!",
			Description: "Meeting request submitted successfully",
		})
		g.DemoSubmitted()
	})
	http.Redirect(w, r, "/check-meetings", http.StatusSeeOther)
}

// CheckMeetings is the standalone meeting list page.
func (h *Handler) CheckMeetings(w http.ResponseWriter, r *http.Request) {
	if !h.loggedIn(r) {
		back(w, r)
		return
	}
	tag, _ := i18n.ResolveTag(r)
	p := h.newPage(h.snapshot(r, nil), tag)

	status := http.StatusOK
	if !h.loadMeetings(r, p, tag) {
		status = http.StatusInternalServerError
	}
	h.render(w, status, "meetings", p)
}

func (h *Handler) ExportMeetings(w http.ResponseWriter, r *http.Request) {
	if !h.loggedIn(r) {
		back(w, r)
		return
	}
	ms, err := h.ledger.Read(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("export: read ledger")
		http.Error(w, "meetings could not be loaded", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := export.MeetingsXLSX(&buf, ms); err != nil {
		h.log.Error().Err(err).Msg("export: build workbook")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="meetings.xlsx"`)
	buf.WriteTo(w)
}
