package payload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

func TestEncodeNeverEmpty(t *testing.T) {
	for _, info := range entity.Types {
		t.Run(string(info.Type), func(t *testing.T) {
			assert.NotEmpty(t, Encode(info.Type, nil))
			assert.NotEmpty(t, Encode(info.Type, entity.FormFields{}))
			assert.NotEmpty(t, Placeholder(info.Type))
		})
	}
	assert.Equal(t, SiteURL, Encode("no-such-type", nil))
	assert.Equal(t, SiteURL, Placeholder("no-such-type"))
}

func TestPlaceholderIgnoresInput(t *testing.T) {
	for _, info := range entity.Types {
		before := Placeholder(info.Type)
		_ = Encode(info.Type, entity.FormFields{FieldURL: "https://private.example/secret", FieldHandle: "me"})
		assert.Equal(t, before, Placeholder(info.Type), info.Type)
		assert.NotContains(t, Placeholder(info.Type), "private.example")
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		typ    entity.QRType
		fields entity.FormFields
		want   string
	}{
		{"url", entity.TypeURL, entity.FormFields{"url": " https://example.org "}, "https://example.org"},
		{"url blank", entity.TypeURL, nil, SiteURL},
		{"text", entity.TypeText, entity.FormFields{"text": "hello"}, "hello"},
		{
			"wifi",
			entity.TypeWiFi,
			entity.FormFields{"ssid": "MyNet", "password": "pw123", "security": "WPA"},
			"WIFI:T:WPA;S:MyNet;P:pw123;;",
		},
		{
			"wifi escapes",
			entity.TypeWiFi,
			entity.FormFields{"ssid": "Cafe;1", "password": `a:b"c`},
			`WIFI:T:WPA;S:Cafe\;1;P:a\:b\"c;;`,
		},
		{"wifi blank ssid", entity.TypeWiFi, entity.FormFields{"password": "x"}, Placeholder(entity.TypeWiFi)},
		{"email", entity.TypeEmail, entity.FormFields{"email": "a@b.com", "subject": "Hi"}, "mailto:a@b.com?subject=Hi"},
		{
			"email body",
			entity.TypeEmail,
			entity.FormFields{"email": "a@b.com", "subject": "Hi", "body": "see you soon"},
			"mailto:a@b.com?subject=Hi&body=see%20you%20soon",
		},
		{"phone", entity.TypePhone, entity.FormFields{"phone": "+1 (555) 123-4567"}, "tel:+15551234567"},
		{"phone blank", entity.TypePhone, nil, "tel:+15551234567"},
		{"sms", entity.TypeSMS, entity.FormFields{"phone": "555-1234", "message": "hi there"}, "sms:5551234?body=hi%20there"},
		{
			"whatsapp",
			entity.TypeWhatsApp,
			entity.FormFields{"phone": "+1 (555) 123-4567", "message": "Hello there"},
			"https://wa.me/15551234567?text=Hello%20there",
		},
		{"instagram at", entity.TypeInstagram, entity.FormFields{"handle": "@jane"}, "https://instagram.com/jane"},
		{"instagram host", entity.TypeInstagram, entity.FormFields{"handle": "instagram.com/jane"}, "https://instagram.com/jane"},
		{
			"instagram full url",
			entity.TypeInstagram,
			entity.FormFields{"handle": "https://www.instagram.com/jane/?hl=en"},
			"https://instagram.com/jane",
		},
		{"twitter", entity.TypeTwitter, entity.FormFields{"handle": "twitter.com/jack"}, "https://x.com/jack"},
		{"linkedin", entity.TypeLinkedIn, entity.FormFields{"handle": "linkedin.com/in/jane-doe"}, "https://linkedin.com/in/jane-doe"},
		{
			"linkedin company page",
			entity.TypeLinkedIn,
			entity.FormFields{"handle": "https://www.linkedin.com/company/acme/about"},
			"https://linkedin.com/company/acme",
		},
		{"linkedin school page", entity.TypeLinkedIn, entity.FormFields{"handle": "linkedin.com/school/mit"}, "https://linkedin.com/school/mit"},
		{"reddit", entity.TypeReddit, entity.FormFields{"handle": "https://reddit.com/user/spez"}, "https://reddit.com/u/spez"},
		{"reddit short", entity.TypeReddit, entity.FormFields{"handle": "u/spez"}, "https://reddit.com/u/spez"},
		{"tiktok", entity.TypeTikTok, entity.FormFields{"handle": "@dancer"}, "https://tiktok.com/@dancer"},
		{"cashapp", entity.TypeCashApp, entity.FormFields{"handle": "$joe"}, "https://cash.app/$joe"},
		{"paypal amount", entity.TypePayPal, entity.FormFields{"handle": "paypal.me/joe", "amount": "10"}, "https://paypal.me/joe/10"},
		{"social blank", entity.TypeGitHub, nil, "https://github.com/username"},
		{"crypto default", entity.TypeCrypto, nil, "bitcoin:" + sampleBTC},
		{
			"ethereum",
			entity.TypeEthereum,
			entity.FormFields{"cryptoAddress": "0xabc", "cryptoAmount": "1.5"},
			"ethereum:0xabc?amount=1.5",
		},
		{"xrp scheme", entity.TypeXRP, entity.FormFields{"cryptoAddress": "rXYZ"}, "ripple:rXYZ"},
		{"coin field wins", entity.TypeCrypto, entity.FormFields{"cryptoCoin": "solana", "cryptoAddress": "So1"}, "solana:So1"},
		{"unknown coin scheme", entity.TypeCrypto, entity.FormFields{"cryptoCoin": "Doge Coin", "cryptoAddress": "D1"}, "dogecoin:D1"},
		{"unusable coin scheme", entity.TypeCrypto, entity.FormFields{"cryptoCoin": "42 !!", "cryptoAddress": "D1"}, "bitcoin:D1"},
		{
			"youtube short link",
			entity.TypeYouTube,
			entity.FormFields{"url": "https://youtu.be/dQw4w9WgXcQ"},
			"https://youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{"youtube passthrough", entity.TypeYouTube, entity.FormFields{"url": "https://youtube.com/@chan"}, "https://youtube.com/@chan"},
		{"youtube blank", entity.TypeYouTube, nil, "https://youtube.com"},
		{
			"google maps coordinates",
			entity.TypeGoogleMaps,
			entity.FormFields{"url": "40.7128, -74.0060"},
			"https://www.google.com/maps?q=40.7128,-74.0060",
		},
		{
			"apple maps url coordinates",
			entity.TypeAppleMaps,
			entity.FormFields{"url": "https://maps.google.com/@-33.8568,151.2153,15z"},
			"http://maps.apple.com/?q=-33.8568,151.2153",
		},
		{"maps free text", entity.TypeGoogleMaps, entity.FormFields{"url": "Open 9,5 hours"}, "Open 9,5 hours"},
		{"maps out of range", entity.TypeGoogleMaps, entity.FormFields{"url": "95.1, 10.2"}, "95.1, 10.2"},
		{
			"app store",
			entity.TypeAppStore,
			entity.FormFields{"url": "https://apps.apple.com/us/app/foo/id123456"},
			"https://apps.apple.com/app/id123456",
		},
		{
			"google play",
			entity.TypeGooglePlay,
			entity.FormFields{"url": "https://play.google.com/store/apps/details?id=com.example.app&hl=en"},
			"https://play.google.com/store/apps/details?id=com.example.app",
		},
		{"calendly path", entity.TypeCalendly, entity.FormFields{"url": "calendly.com/jane/30min"}, "https://calendly.com/jane/30min"},
		{"calendly full url", entity.TypeCalendly, entity.FormFields{"url": "https://calendly.com/jane"}, "https://calendly.com/jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.typ, tt.fields))
		})
	}
}

func TestEncodeVCard(t *testing.T) {
	got := Encode(entity.TypeVCard, entity.FormFields{
		"firstName": "Jane",
		"lastName":  "Doe",
		"phone":     "+1 555",
		"company":   "Acme, Inc.",
	})
	want := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Jane Doe",
		"N:Doe;Jane;;;",
		"TEL:+1 555",
		`ORG:Acme\, Inc.`,
		"END:VCARD",
	}, "\n")
	assert.Equal(t, want, got)

	assert.Equal(t, Placeholder(entity.TypeVCard), Encode(entity.TypeVCard, entity.FormFields{"firstName": "  "}))

	noName := Encode(entity.TypeVCard, entity.FormFields{"email": "a@b.com"})
	assert.NotContains(t, noName, "FN:")
	assert.Contains(t, noName, "EMAIL:a@b.com")
}

func TestEncodeEvent(t *testing.T) {
	got := Encode(entity.TypeEvent, entity.FormFields{
		"title":    "Launch",
		"start":    "2026-03-01T09:30",
		"end":      "2026-03-01T10:30",
		"location": "Room 1",
	})
	want := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Launch",
		"DTSTART:20260301T093000",
		"DTEND:20260301T103000",
		"LOCATION:Room 1",
		"END:VEVENT",
	}, "\n")
	assert.Equal(t, want, got)

	blank := Encode(entity.TypeEvent, nil)
	assert.NotContains(t, blank, "SUMMARY")
	assert.Contains(t, blank, "DTSTART:"+eventStartDef)
	assert.Contains(t, blank, "DTEND:"+eventEndDef)
}

func TestHasData(t *testing.T) {
	assert.False(t, HasData(entity.TypeWiFi, entity.FormFields{"security": "WEP"}))
	assert.True(t, HasData(entity.TypeWiFi, entity.FormFields{"ssid": "x"}))
	assert.False(t, HasData(entity.TypeCrypto, entity.FormFields{"cryptoCoin": "ethereum"}))
	assert.False(t, HasData(entity.TypeURL, entity.FormFields{"url": "   "}))
	// Fields of another type do not count.
	assert.False(t, HasData(entity.TypeURL, entity.FormFields{"ssid": "x"}))

	// Unless the encoder of the active type reads them.
	kept := entity.FormFields{"handle": "jane_private"}
	for _, typ := range []entity.QRType{entity.TypeCalendly, entity.TypeZillow, entity.TypeRedfin, entity.TypeRealtor} {
		assert.True(t, HasData(typ, kept), typ)
	}
	assert.True(t, HasData(entity.TypeCrypto, entity.FormFields{"address": "bc1qkept"}))
}

func TestSchemaCoversEveryType(t *testing.T) {
	for _, info := range entity.Types {
		assert.NotEmpty(t, Schema(info.Type), info.Type)
	}
}
