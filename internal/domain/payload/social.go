package payload

import (
	"regexp"
	"strings"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

// socialRule canonicalizes one platform's handle. prefix matches what a user may paste in
// front of the handle (scheme, host, fixed path); sigil is the leading marker the platform
// shows next to handles.
type socialRule struct {
	prefix *regexp.Regexp
	sigil  string
	clean  func(string) string
	build  func(handle string) string
}

func host(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(?:https?://)?` + pattern)
}

var socialRules = map[entity.QRType]socialRule{
	entity.TypeTelegram: {
		prefix: host(`(?:www\.)?(?:t\.me|telegram\.me|telegram\.dog)/`),
		sigil:  "@",
		build:  func(h string) string { return "https://t.me/" + h },
	},
	entity.TypeMessenger: {
		prefix: host(`(?:www\.)?(?:m\.me|messenger\.com/t)/`),
		sigil:  "@",
		build:  func(h string) string { return "https://m.me/" + h },
	},
	entity.TypeDiscord: {
		prefix: host(`(?:www\.)?(?:discord\.gg|discord(?:app)?\.com/invite)/`),
		sigil:  "@",
		clean:  func(h string) string { return strings.ReplaceAll(h, "#", "") },
		build:  func(h string) string { return "https://discord.gg/" + h },
	},
	entity.TypeThreads: {
		prefix: host(`(?:www\.)?threads\.(?:net|com)/`),
		sigil:  "@",
		build:  func(h string) string { return "https://threads.net/@" + h },
	},
	entity.TypeInstagram: {
		prefix: host(`(?:www\.)?instagram\.com/`),
		sigil:  "@",
		build:  func(h string) string { return "https://instagram.com/" + h },
	},
	entity.TypeFacebook: {
		prefix: host(`(?:www\.|m\.|web\.)?(?:facebook\.com|fb\.com)/`),
		sigil:  "@",
		build:  func(h string) string { return "https://facebook.com/" + h },
	},
	entity.TypeTwitter: {
		prefix: host(`(?:www\.|mobile\.)?(?:twitter\.com|x\.com)/`),
		sigil:  "@",
		build:  func(h string) string { return "https://x.com/" + h },
	},
	entity.TypeLinkedIn: {
		prefix: host(`(?:[a-z]{2,3}\.)?linkedin\.com/`),
		sigil:  "@",
		clean:  func(h string) string { return strings.TrimPrefix(h, "in/") },
		build:  func(h string) string { return "https://linkedin.com/in/" + h },
	},
	entity.TypeTikTok: {
		prefix: host(`(?:www\.|m\.)?tiktok\.com/`),
		sigil:  "@",
		build:  func(h string) string { return "https://tiktok.com/@" + h },
	},
	entity.TypeSnapchat: {
		prefix: host(`(?:www\.)?snapchat\.com/(?:add/)?`),
		sigil:  "@",
		build:  func(h string) string { return "https://snapchat.com/add/" + h },
	},
	entity.TypePinterest: {
		prefix: host(`(?:[a-z]{2}\.|www\.)?pinterest\.[a-z.]+/`),
		sigil:  "@",
		build:  func(h string) string { return "https://pinterest.com/" + h },
	},
	entity.TypeReddit: {
		prefix: host(`(?:www\.|old\.|new\.)?reddit\.com/`),
		clean:  redditUser,
		build:  func(h string) string { return "https://reddit.com/u/" + h },
	},
	entity.TypeTwitch: {
		prefix: host(`(?:www\.|m\.)?twitch\.tv/`),
		build:  func(h string) string { return "https://twitch.tv/" + h },
	},
	entity.TypeGitHub: {
		prefix: host(`(?:www\.)?github\.com/`),
		sigil:  "@",
		build:  func(h string) string { return "https://github.com/" + h },
	},
	entity.TypeMedium: {
		prefix: host(`(?:www\.)?medium\.com/`),
		sigil:  "@",
		build:  func(h string) string { return "https://medium.com/@" + h },
	},
	entity.TypePayPal: {
		prefix: host(`(?:www\.)?paypal\.(?:me|com/paypalme)/`),
		sigil:  "@",
		build:  func(h string) string { return "https://paypal.me/" + h },
	},
	entity.TypeVenmo: {
		prefix: host(`(?:www\.|account\.)?venmo\.com/(?:u/)?`),
		sigil:  "@",
		build:  func(h string) string { return "https://venmo.com/" + h },
	},
	entity.TypeCashApp: {
		prefix: host(`(?:www\.)?cash\.app/`),
		sigil:  "$",
		build:  func(h string) string { return "https://cash.app/$" + h },
	},
}

var (
	redditPrefix = regexp.MustCompile(`^/?(?:u|user)/`)
	linkedInPage = regexp.MustCompile(`(?i)^(?:company|school|showcase)/[^/?#\s]+`)
)

func redditUser(h string) string {
	return redditPrefix.ReplaceAllString(h, "")
}

// canonicalHandle reduces raw input (a bare handle, "@handle" or a pasted profile URL) to
// the handle alone. Blank results fall back to the sample handle.
func (r socialRule) canonicalHandle(raw string) string {
	h := strings.TrimSpace(raw)
	h = r.prefix.ReplaceAllString(h, "")
	if r.sigil != "" {
		h = strings.TrimLeft(h, r.sigil)
	}
	if r.clean != nil {
		h = r.clean(h)
	}
	if i := strings.IndexAny(h, "/?"); i >= 0 {
		h = h[:i]
	}
	if r.sigil != "" {
		h = strings.TrimLeft(h, r.sigil)
	}
	if h == "" {
		return sampleHandle
	}
	return h
}

func encodeSocial(t entity.QRType, rule socialRule, fields entity.FormFields) string {
	if t == entity.TypeLinkedIn {
		// Company and school pages are not profiles; keep their path.
		path := rule.prefix.ReplaceAllString(fields.Get(FieldHandle), "")
		if page := linkedInPage.FindString(path); page != "" {
			return "https://linkedin.com/" + page
		}
	}
	handle := rule.canonicalHandle(fields.Get(FieldHandle))
	out := rule.build(handle)

	switch t {
	case entity.TypePayPal:
		if amount := fields.Get(FieldAmount); amount != "" {
			out += "/" + amount
		}
	case entity.TypeVenmo:
		out += query("note", fields.Get(FieldMessage))
	}
	return out
}

func encodeWhatsApp(fields entity.FormFields) string {
	number := digitsOnly(value(entity.TypeWhatsApp, fields, FieldPhone))
	if number == "" {
		number = digitsOnly(samplePhone)
	}
	return "https://wa.me/" + number + query("text", fields.Get(FieldMessage))
}
