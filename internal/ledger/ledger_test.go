package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/text/language"

	"meeting-dashboard/internal/ledger"
	"meeting-dashboard/internal/model"
	"meeting-dashboard/internal/store"
)

var fixedNow = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*ledger.Ledger, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	l := ledger.New(st, "meetings").WithClock(func() time.Time { return fixedNow })
	return l, st
}

func validForm() model.MeetingForm {
	return model.MeetingForm{
		CompanyName:   "Acme Corp",
		ContactPerson: "Dana Cruz",
		ContactNumber: "+63 917 555 0101",
		MeetingDate:   "2026-11-02",
		MeetingTime:   "13:00 - 14:30",
		ClientEmails:  "dana@acme.test, ops@acme.test",
		TeamEmails:    "rm@example.test",
	}
}

// ----- read tests -----

func TestReadMissingKey(t *testing.T) {
	l, _ := setup(t)
	got, err := l.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestReadEmptyValues(t *testing.T) {
	for _, raw := range []string{"", "   ", "null", "[]"} {
		t.Run(raw, func(t *testing.T) {
			l, st := setup(t)
			st.Set(context.Background(), "meetings", raw)
			got, err := l.Read(context.Background())
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected empty list, got %d", len(got))
			}
		})
	}
}

func TestReadCorrupt(t *testing.T) {
	for _, raw := range []string{"{not json", `{"id":1}`, `"meetings"`} {
		t.Run(raw, func(t *testing.T) {
			l, st := setup(t)
			st.Set(context.Background(), "meetings", raw)
			_, err := l.Read(context.Background())
			if !errors.Is(err, ledger.ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

// ----- append tests -----

func TestAppendOne(t *testing.T) {
	l, _ := setup(t)
	ctx := context.Background()

	rec, err := l.Append(ctx, validForm(), language.AmericanEnglish)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.Status != "Pending" {
		t.Errorf("expected Pending, got %q", rec.Status)
	}
	if rec.DateSubmitted != "10/16/2026" {
		t.Errorf("expected today's date, got %q", rec.DateSubmitted)
	}
	if rec.ID != fixedNow.UnixMilli() {
		t.Errorf("expected timestamp id, got %d", rec.ID)
	}

	all, err := l.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	if all[0] != rec {
		t.Errorf("stored record differs:\n got %+v\nwant %+v", all[0], rec)
	}
}

func TestAppendKeepsExisting(t *testing.T) {
	l, st := setup(t)
	ctx := context.Background()
	st.Set(ctx, "meetings", `[{"companyName":"Old Co","id":5,"status":"Pending","dateSubmitted":"1/1/2025"}]`)

	if _, err := l.Append(ctx, validForm(), language.AmericanEnglish); err != nil {
		t.Fatalf("append: %v", err)
	}
	all, _ := l.Read(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].CompanyName != "Old Co" || all[1].CompanyName != "Acme Corp" {
		t.Errorf("unexpected order: %q, %q", all[0].CompanyName, all[1].CompanyName)
	}
}

func TestAppendSameTick(t *testing.T) {
	l, _ := setup(t)
	ctx := context.Background()

	a, err := l.Append(ctx, validForm(), language.AmericanEnglish)
	if err != nil {
		t.Fatalf("first append: %v", err)
	}
	f := validForm()
	f.CompanyName = "Second Co"
	b, err := l.Append(ctx, f, language.AmericanEnglish)
	if err != nil {
		t.Fatalf("second append: %v", err)
	}

	// the clock did not move, so a raw timestamp id would collide
	if a.ID == b.ID {
		t.Fatalf("ids collide: %d", a.ID)
	}
	all, _ := l.Read(ctx)
	if len(all) != 2 {
		t.Fatalf("expected both records, got %d", len(all))
	}
	if all[0].CompanyName != "Acme Corp" || all[1].CompanyName != "Second Co" {
		t.Errorf("record overwritten: %+v", all)
	}
}

func TestAppendConcurrent(t *testing.T) {
	l, _ := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Append(ctx, validForm(), language.AmericanEnglish); err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()

	all, _ := l.Read(ctx)
	if len(all) != 25 {
		t.Fatalf("lost updates: %d records", len(all))
	}
	seen := map[int64]bool{}
	for _, m := range all {
		if seen[m.ID] {
			t.Fatalf("duplicate id %d", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestAppendTimeSlotsRoundTrip(t *testing.T) {
	for _, slot := range model.TimeSlots {
		t.Run(slot, func(t *testing.T) {
			l, st := setup(t)
			f := validForm()
			f.MeetingTime = slot
			if _, err := l.Append(context.Background(), f, language.AmericanEnglish); err != nil {
				t.Fatalf("append: %v", err)
			}

			raw, _, _ := st.Get(context.Background(), "meetings")
			var stored []map[string]any
			if err := json.Unmarshal([]byte(raw), &stored); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if stored[0]["meetingTime"] != slot {
				t.Errorf("got %v, want %q", stored[0]["meetingTime"], slot)
			}
		})
	}
}

func TestAppendStoredFieldNames(t *testing.T) {
	l, st := setup(t)
	if _, err := l.Append(context.Background(), validForm(), language.AmericanEnglish); err != nil {
		t.Fatalf("append: %v", err)
	}
	raw, _, _ := st.Get(context.Background(), "meetings")
	var stored []map[string]any
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, k := range []string{
		"companyName", "contactPerson", "contactNumber", "meetingDate", "meetingTime",
		"clientEmails", "teamEmails", "id", "status", "dateSubmitted",
	} {
		if _, ok := stored[0][k]; !ok {
			t.Errorf("missing key %q in %s", k, raw)
		}
	}
}

func TestAppendLocaleDate(t *testing.T) {
	l, _ := setup(t)
	rec, err := l.Append(context.Background(), validForm(), language.German)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.DateSubmitted != "16.10.2026" {
		t.Errorf("got %q", rec.DateSubmitted)
	}
}

func TestAppendCorruptLeftUntouched(t *testing.T) {
	l, st := setup(t)
	ctx := context.Background()
	st.Set(ctx, "meetings", "{broken")

	_, err := l.Append(ctx, validForm(), language.AmericanEnglish)
	if !errors.Is(err, ledger.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if raw, _, _ := st.Get(ctx, "meetings"); raw != "{broken" {
		t.Errorf("corrupt value overwritten with %q", raw)
	}
}

// ----- validation tests -----

func TestAppendValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*model.MeetingForm)
		field string
		err   error
	}{
		{"no company", func(f *model.MeetingForm) { f.CompanyName = "" }, "companyName", ledger.ErrMissingField},
		{"blank contact", func(f *model.MeetingForm) { f.ContactPerson = "   " }, "contactPerson", ledger.ErrMissingField},
		{"no number", func(f *model.MeetingForm) { f.ContactNumber = "" }, "contactNumber", ledger.ErrMissingField},
		{"no date", func(f *model.MeetingForm) { f.MeetingDate = "" }, "meetingDate", ledger.ErrMissingField},
		{"no slot", func(f *model.MeetingForm) { f.MeetingTime = "" }, "meetingTime", ledger.ErrMissingField},
		{"unknown slot", func(f *model.MeetingForm) { f.MeetingTime = "8:00 - 9:00" }, "meetingTime", ledger.ErrInvalidSlot},
		{"no client emails", func(f *model.MeetingForm) { f.ClientEmails = "" }, "clientEmails", ledger.ErrMissingField},
		{"no team emails", func(f *model.MeetingForm) { f.TeamEmails = "" }, "teamEmails", ledger.ErrMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, st := setup(t)
			f := validForm()
			tt.edit(&f)

			_, err := l.Append(context.Background(), f, language.AmericanEnglish)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			var fe *ledger.FieldError
			if !errors.As(err, &fe) || fe.Field != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, err)
			}
			if _, ok, _ := st.Get(context.Background(), "meetings"); ok {
				t.Error("ledger written despite validation failure")
			}
		})
	}
}

func TestAppendAcceptsLooseEmails(t *testing.T) {
	l, _ := setup(t)
	f := validForm()
	f.ClientEmails = "not an email,,also not"
	f.MeetingDate = "1999-01-01"
	if _, err := l.Append(context.Background(), f, language.AmericanEnglish); err != nil {
		t.Fatalf("expected free-text fields to be accepted, got %v", err)
	}
}
