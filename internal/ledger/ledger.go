package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"meeting-dashboard/internal/i18n"
	"meeting-dashboard/internal/model"
	"meeting-dashboard/internal/store"
)

var (
	ErrCorrupt      = errors.New("meeting ledger is corrupt")
	ErrMissingField = errors.New("required field missing")
	ErrInvalidSlot  = errors.New("unknown meeting time slot")
)

// FieldError names the form field that failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// Ledger is the list of meeting requests stored as one JSON array under a
// single key.
type Ledger struct {
	st  store.Store
	key string
	now func() time.Time
}

func New(st store.Store, key string) *Ledger {
	return &Ledger{st: st, key: key, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

func (l *Ledger) Key() string { return l.key }

// Read returns every stored request in submission order. A missing or empty
// value is an empty ledger; anything undecodable is ErrCorrupt.
func (l *Ledger) Read(ctx context.Context) ([]model.MeetingRequest, error) {
	raw, _, err := l.st.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return decode(raw)
}

func (l *Ledger) Len(ctx context.Context) (int, error) {
	out, err := l.Read(ctx)
	return len(out), err
}

func decode(raw string) ([]model.MeetingRequest, error) {
	out := []model.MeetingRequest{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	var got []model.MeetingRequest
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	// JSON null decodes to a nil slice
	if got == nil {
		return out, nil
	}
	return got, nil
}

// Validate trims every field and checks the demo form's constraints.
func Validate(f model.MeetingForm) (model.MeetingForm, error) {
	f = model.MeetingForm{
		CompanyName:   strings.TrimSpace(f.CompanyName),
		ContactPerson: strings.TrimSpace(f.ContactPerson),
		ContactNumber: strings.TrimSpace(f.ContactNumber),
		MeetingDate:   strings.TrimSpace(f.MeetingDate),
		MeetingTime:   strings.TrimSpace(f.MeetingTime),
		ClientEmails:  strings.TrimSpace(f.ClientEmails),
		TeamEmails:    strings.TrimSpace(f.TeamEmails),
	}
	required := []struct{ name, v string }{
		{"companyName", f.CompanyName},
		{"contactPerson", f.ContactPerson},
		{"contactNumber", f.ContactNumber},
		{"meetingDate", f.MeetingDate},
		{"meetingTime", f.MeetingTime},
		{"clientEmails", f.ClientEmails},
		{"teamEmails", f.TeamEmails},
	}
	for _, r := range required {
		if r.v == "" {
			return f, &FieldError{Field: r.name, Err: ErrMissingField}
		}
	}
	if !model.ValidSlot(f.MeetingTime) {
		return f, &FieldError{Field: "meetingTime", Err: ErrInvalidSlot}
	}
	return f, nil
}

// Append validates f and adds one Pending request dated in the given locale.
// A corrupt ledger is left as it is and ErrCorrupt returned.
func (l *Ledger) Append(ctx context.Context, f model.MeetingForm, locale language.Tag) (model.MeetingRequest, error) {
	f, err := Validate(f)
	if err != nil {
		return model.MeetingRequest{}, err
	}

	var rec model.MeetingRequest
	err = l.st.Update(ctx, l.key, func(cur string, _ bool) (string, error) {
		existing, err := decode(cur)
		if err != nil {
			return "", err
		}

		now := l.now()
		rec = model.MeetingRequest{
			MeetingForm:   f,
			ID:            nextID(now, existing),
			Status:        model.StatusPending,
			DateSubmitted: i18n.FormatDate(locale, now),
		}

		b, err := json.Marshal(append(existing, rec))
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
	if err != nil {
		return model.MeetingRequest{}, fmt.Errorf("append meeting: %w", err)
	}
	return rec, nil
}

// ids are millisecond timestamps, bumped past the largest stored id so two
// submissions in the same millisecond stay distinct
func nextID(now time.Time, existing []model.MeetingRequest) int64 {
	id := now.UnixMilli()
	for _, m := range existing {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}
