package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/text/language"

	"meeting-dashboard/internal/i18n"
)

func TestFormatDate(t *testing.T) {
	day := time.Date(2026, time.March, 7, 15, 4, 0, 0, time.UTC)

	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.AmericanEnglish, "3/7/2026"},
		{language.English, "3/7/2026"},
		{language.BritishEnglish, "07/03/2026"},
		{language.French, "07/03/2026"},
		{language.German, "7.3.2026"},
		{language.Japanese, "2026/3/7"},
		{language.Und, "3/7/2026"},
	}
	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			if got := i18n.FormatDate(tt.tag, day); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveTag(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		cookie  string
		accept  string
		want    language.Tag
		persist bool
	}{
		{"default", "/", "", "", language.AmericanEnglish, false},
		{"accept header", "/", "", "de-DE,de;q=0.9", language.German, false},
		{"cookie beats header", "/", "ja", "de", language.Japanese, false},
		{"query beats cookie", "/?lang=en-GB", "ja", "", language.BritishEnglish, true},
		{"garbage query ignored", "/?lang=123456789", "", "fr", language.French, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			got, persist := i18n.ResolveTag(r)
			if got != tt.want {
				t.Errorf("tag: got %v, want %v", got, tt.want)
			}
			if persist != tt.persist {
				t.Errorf("persist: got %v, want %v", persist, tt.persist)
			}
		})
	}
}

func TestCountMeetings(t *testing.T) {
	if got := i18n.CountMeetings(language.AmericanEnglish, 1); got != "1 meeting" {
		t.Errorf("got %q", got)
	}
	if got := i18n.CountMeetings(language.AmericanEnglish, 1234); got != "1,234 meetings" {
		t.Errorf("got %q", got)
	}
}
