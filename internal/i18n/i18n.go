package i18n

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "dash_lang"
)

// supported[0] is the default.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
	language.Japanese,
}

var matcher = language.NewMatcher(supported)

func Default() language.Tag { return supported[0] }

// Match maps any tag onto the closest supported one.
func Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}

func parse(v string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(v))
	if err != nil {
		return language.Und, false
	}
	return Match(tag), true
}

// ResolveTag picks the request locale from ?lang=, the language cookie, then
// Accept-Language. The bool reports whether ?lang= should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if v := r.URL.Query().Get(LangParam); v != "" {
		if tag, ok := parse(v); ok {
			return tag, true
		}
	}
	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := parse(c.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return Match(tags...), false
		}
	}
	return Default(), false
}

func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// FormatDate renders t as a short numeric date in the tag's convention,
// matching what browsers print for toLocaleDateString.
func FormatDate(tag language.Tag, t time.Time) string {
	y, m, d := t.Date()
	switch Match(tag) {
	case language.BritishEnglish, language.French:
		return fmt.Sprintf("%02d/%02d/%d", d, int(m), y)
	case language.German:
		return fmt.Sprintf("%d.%d.%d", d, int(m), y)
	case language.Japanese:
		return fmt.Sprintf("%d/%d/%d", y, int(m), d)
	}
	return fmt.Sprintf("%d/%d/%d", int(m), d, y)
}

func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(Match(tag))
}

// CountMeetings renders "1 meeting" / "1,234 meetings" with locale digit grouping.
func CountMeetings(tag language.Tag, n int) string {
	p := Printer(tag)
	if n == 1 {
		return p.Sprintf("%d meeting", n)
	}
	return p.Sprintf("%d meetings", n)
}
