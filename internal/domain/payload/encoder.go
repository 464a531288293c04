// Package payload turns a QR type and the user's form fields into the string stored in
// the code's data modules.
//
// Encode and Placeholder are total: every type, including unknown ones, yields a non-empty
// scannable string. Blank required fields are replaced by sample values rather than
// reported as errors, and pasted URLs that do not match a platform's pattern pass through
// unchanged.
package payload

import (
	"strings"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

// Encode builds the payload for t from fields.
func Encode(t entity.QRType, fields entity.FormFields) string {
	if rule, ok := socialRules[t]; ok {
		return encodeSocial(t, rule, fields)
	}
	if site, ok := profileSites[t]; ok {
		return encodeProfile(t, site, fields)
	}

	switch t {
	case entity.TypeURL, entity.TypeWebsite, entity.TypeApartments:
		return value(t, fields, FieldURL)
	case entity.TypeText:
		return value(t, fields, FieldText)
	case entity.TypeWiFi:
		return encodeWiFi(fields)
	case entity.TypeEmail:
		return encodeEmail(fields)
	case entity.TypePhone:
		return "tel:" + phoneOrSample(t, fields)
	case entity.TypeSMS:
		return "sms:" + phoneOrSample(t, fields) + query("body", fields.Get(FieldMessage))
	case entity.TypeVCard:
		return encodeVCard(fields)
	case entity.TypeEvent:
		return encodeEvent(fields)
	case entity.TypeWhatsApp:
		return encodeWhatsApp(fields)
	case entity.TypeCrypto, entity.TypeBitcoin, entity.TypeEthereum, entity.TypeSolana,
		entity.TypeXRP, entity.TypeBNB, entity.TypeTON:
		return encodeCrypto(t, fields)
	case entity.TypeYouTube, entity.TypeSpotify, entity.TypeAppStore, entity.TypeGooglePlay,
		entity.TypeAmazon, entity.TypeGoogleMaps, entity.TypeAppleMaps, entity.TypeGoogleReviews:
		return encodePlatform(t, fields)
	}
	return SiteURL
}

func phoneOrSample(t entity.QRType, fields entity.FormFields) string {
	if p := dialable(value(t, fields, FieldPhone)); p != "" && p != "+" {
		return p
	}
	return samplePhone
}

func encodeWiFi(fields entity.FormFields) string {
	ssid := fields.Get(FieldSSID)
	if ssid == "" {
		return placeholders[entity.TypeWiFi]
	}
	security := value(entity.TypeWiFi, fields, FieldSecurity)
	return "WIFI:T:" + security +
		";S:" + wifiEscaper.Replace(ssid) +
		";P:" + wifiEscaper.Replace(fields.Raw(FieldPassword)) + ";;"
}

func encodeEmail(fields entity.FormFields) string {
	address := value(entity.TypeEmail, fields, FieldEmail)
	return "mailto:" + address + query(
		"subject", fields.Get(FieldSubject),
		"body", fields.Get(FieldBody),
	)
}

func encodeVCard(fields entity.FormFields) string {
	if !schemaHasData(entity.TypeVCard, fields) {
		return placeholders[entity.TypeVCard]
	}
	first, last := fields.Get(FieldFirstName), fields.Get(FieldLastName)

	lines := []string{"BEGIN:VCARD", "VERSION:3.0"}
	if first != "" || last != "" {
		lines = append(lines,
			"FN:"+vText.Replace(strings.TrimSpace(first+" "+last)),
			"N:"+vText.Replace(last)+";"+vText.Replace(first)+";;;",
		)
	}
	optional := []struct{ tag, field string }{
		{"TEL", FieldPhone},
		{"EMAIL", FieldEmail},
		{"ORG", FieldCompany},
		{"TITLE", FieldTitle},
		{"URL", FieldWebsite},
	}
	for _, o := range optional {
		v := fields.Get(o.field)
		if v == "" {
			continue
		}
		if o.tag == "ORG" || o.tag == "TITLE" {
			v = vText.Replace(v)
		}
		lines = append(lines, o.tag+":"+v)
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n")
}

func encodeEvent(fields entity.FormFields) string {
	lines := []string{"BEGIN:VEVENT"}
	if title := fields.Get(FieldTitle); title != "" {
		lines = append(lines, "SUMMARY:"+vText.Replace(title))
	}
	lines = append(lines,
		"DTSTART:"+calendarTime(value(entity.TypeEvent, fields, FieldStart)),
		"DTEND:"+calendarTime(value(entity.TypeEvent, fields, FieldEnd)),
	)
	if loc := fields.Get(FieldLocation); loc != "" {
		lines = append(lines, "LOCATION:"+vText.Replace(loc))
	}
	if desc := fields.Get(FieldDescription); desc != "" {
		lines = append(lines, "DESCRIPTION:"+vText.Replace(desc))
	}
	lines = append(lines, "END:VEVENT")
	return strings.Join(lines, "\n")
}

var placeholders = map[entity.QRType]string{
	entity.TypeURL:   "https://example.com",
	entity.TypeText:  "Your text here",
	entity.TypeWiFi:  "WIFI:T:WPA;S:Network;P:password;;",
	entity.TypeEmail: "mailto:hello@example.com",
	entity.TypePhone: "tel:" + samplePhone,
	entity.TypeSMS:   "sms:" + samplePhone,
	entity.TypeVCard: "BEGIN:VCARD\nVERSION:3.0\nFN:John Doe\nN:Doe;John;;;\nEND:VCARD",
	entity.TypeEvent: "BEGIN:VEVENT\nSUMMARY:Sample Event\nDTSTART:" + eventStartDef +
		"\nDTEND:" + eventEndDef + "\nEND:VEVENT",

	entity.TypeWhatsApp:  "https://wa.me/15551234567",
	entity.TypeTelegram:  "https://t.me/username",
	entity.TypeMessenger: "https://m.me/username",
	entity.TypeDiscord:   "https://discord.gg/invite",
	entity.TypeThreads:   "https://threads.net/@username",
	entity.TypeInstagram: "https://instagram.com/sample",
	entity.TypeFacebook:  "https://facebook.com/sample",
	entity.TypeTwitter:   "https://x.com/sample",
	entity.TypeLinkedIn:  "https://linkedin.com/in/sample",
	entity.TypeTikTok:    "https://tiktok.com/@sample",
	entity.TypeSnapchat:  "https://snapchat.com/add/sample",
	entity.TypeYouTube:   "https://youtube.com",
	entity.TypePinterest: "https://pinterest.com/sample",
	entity.TypeReddit:    "https://reddit.com/u/sample",
	entity.TypeTwitch:    "https://twitch.tv/sample",
	entity.TypeGitHub:    "https://github.com/sample",
	entity.TypeMedium:    "https://medium.com/@sample",

	entity.TypePayPal:  "https://paypal.me/sample",
	entity.TypeVenmo:   "https://venmo.com/sample",
	entity.TypeCashApp: "https://cash.app/$sample",

	entity.TypeAppStore:      "https://apps.apple.com",
	entity.TypeGooglePlay:    "https://play.google.com",
	entity.TypeAmazon:        "https://amazon.com",
	entity.TypeGoogleMaps:    "https://maps.google.com",
	entity.TypeAppleMaps:     "http://maps.apple.com",
	entity.TypeSpotify:       "https://spotify.com",
	entity.TypeWebsite:       "https://example.com",
	entity.TypeCalendly:      "https://calendly.com/username",
	entity.TypeZillow:        "https://www.zillow.com/profile/agent",
	entity.TypeRedfin:        "https://www.redfin.com/agent/12345",
	entity.TypeRealtor:       "https://www.realtor.com/agent/username",
	entity.TypeApartments:    "https://www.apartments.com/listing",
	entity.TypeGoogleReviews: "https://search.google.com/local/writereview",
}

func init() {
	for _, c := range coins {
		placeholders[entity.QRType(c.ID)] = c.Scheme + ":" + c.Sample
	}
	placeholders[entity.TypeCrypto] = "bitcoin:" + sampleBTC
}

// Placeholder returns a fixed sample payload for t that does not depend on user input.
// The preview shows it while the real payload is withheld.
func Placeholder(t entity.QRType) string {
	if p, ok := placeholders[t]; ok {
		return p
	}
	return SiteURL
}
