package validator

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

func Email(email string, _ map[string]interface{}) bool {
	return emailFormat(email) && emailDomain(email)
}

func emailFormat(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return false
	}
	at := strings.LastIndexByte(addr.Address, '@')
	return strings.Contains(addr.Address[at+1:], ".")
}

// emailDomain rejects domains listed in qr.capture.blocked-domains.
func emailDomain(email string) bool {
	email = strings.ToLower(email)
	for _, domain := range viper.GetStringSlice("qr.capture.blocked-domains") {
		if domain != "" && strings.HasSuffix(email, "@"+strings.ToLower(domain)) {
			return false
		}
	}
	return true
}

var phoneDigits = regexp.MustCompile(`\d`)

// Phone accepts anything with 7 to 15 digits, the E.164 bounds.
func Phone(phone string, _ map[string]interface{}) bool {
	n := len(phoneDigits.FindAllString(phone, -1))
	return n >= 7 && n <= 15
}

// URL accepts absolute http(s) URLs and bare "host.tld/path" input, which the encoder
// passes through.
func URL(raw string, _ map[string]interface{}) bool {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && strings.Contains(u.Host, ".")
}
