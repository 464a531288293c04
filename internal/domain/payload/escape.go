package payload

import (
	"net/url"
	"regexp"
	"strings"
)

// queryEscape percent-encodes a query value the way browsers' encodeURIComponent does for
// the characters that matter here: spaces become %20, never '+'.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// query builds "?k=v&k2=v2" from ordered pairs, skipping blank values.
// It returns "" when every value is blank.
func query(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		parts = append(parts, pairs[i]+"="+queryEscape(pairs[i+1]))
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

var wifiEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)

// vText escapes TEXT values in vCard and iCalendar content lines.
var vText = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, "\r\n", `\n`, "\n", `\n`)

var phoneJunk = regexp.MustCompile(`\D`)

// dialable keeps the digits of a phone number and a single leading '+'.
func dialable(phone string) string {
	phone = strings.TrimSpace(phone)
	digits := phoneJunk.ReplaceAllString(phone, "")
	if strings.HasPrefix(phone, "+") {
		return "+" + digits
	}
	return digits
}

// digitsOnly drops everything but digits.
func digitsOnly(phone string) string {
	return phoneJunk.ReplaceAllString(phone, "")
}

var (
	calendarSeparators = strings.NewReplacer("-", "", ":", "")
	minutePrecision    = regexp.MustCompile(`^\d{8}T\d{4}$`)
)

// calendarTime converts "2026-01-01T10:00" style input into basic format
// ("20260101T100000"). Anything else is only stripped of separators.
func calendarTime(s string) string {
	s = calendarSeparators.Replace(strings.TrimSpace(s))
	if minutePrecision.MatchString(s) {
		s += "00"
	}
	return s
}
