package payload

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

var (
	youtubeID     = regexp.MustCompile(`(?:[?&]v=|youtu\.be/|/shorts/|/embed/)([A-Za-z0-9_-]+)`)
	appStoreID    = regexp.MustCompile(`id(\d+)`)
	playPackage   = regexp.MustCompile(`[?&]id=([^&#]+)`)
	amazonASIN    = regexp.MustCompile(`/(?:dp|gp/product)/([A-Z0-9]{10})`)
	coordinates   = regexp.MustCompile(`(?:^|[^\d.])(-?\d{1,2}\.\d+)\s*,\s*(-?\d{1,3}\.\d+)`)
	spotifyItem   = regexp.MustCompile(`(?:open\.spotify\.com/|spotify:)(track|album|playlist|artist|episode|show)[/:]([A-Za-z0-9]+)`)
	googlePlaceID = regexp.MustCompile(`place_id=([^&#]+)`)
	hasScheme     = regexp.MustCompile(`(?i)^https?://`)
)

// extract returns the first capture group of re in s, or "".
func extract(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// latLng finds a decimal "lat,lng" pair in s. Both parts need a fractional part and must
// lie within [-90, 90] and [-180, 180].
func latLng(s string) (lat, lng string, ok bool) {
	m := coordinates.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	la, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.Abs(la) > 90 {
		return "", "", false
	}
	lo, err := strconv.ParseFloat(m[2], 64)
	if err != nil || math.Abs(lo) > 180 {
		return "", "", false
	}
	return m[1], m[2], true
}

// encodePlatform handles link types that point into a platform. A recognized identifier is
// rebuilt into the canonical URL; otherwise the raw input passes through unchanged, and a
// blank field yields the platform's home page.
func encodePlatform(t entity.QRType, fields entity.FormFields) string {
	raw := fields.Get(FieldURL)
	home := value(t, entity.FormFields{}, FieldURL)
	if raw == "" {
		return home
	}

	switch t {
	case entity.TypeYouTube:
		if id := extract(youtubeID, raw); id != "" {
			return "https://youtube.com/watch?v=" + id
		}
	case entity.TypeAppStore:
		if id := extract(appStoreID, raw); id != "" {
			return "https://apps.apple.com/app/id" + id
		}
	case entity.TypeGooglePlay:
		if pkg := extract(playPackage, raw); pkg != "" {
			return "https://play.google.com/store/apps/details?id=" + pkg
		}
	case entity.TypeAmazon:
		if asin := extract(amazonASIN, raw); asin != "" {
			return "https://amazon.com/dp/" + asin
		}
	case entity.TypeGoogleMaps:
		if lat, lng, ok := latLng(raw); ok {
			return "https://www.google.com/maps?q=" + lat + "," + lng
		}
	case entity.TypeAppleMaps:
		if lat, lng, ok := latLng(raw); ok {
			return "http://maps.apple.com/?q=" + lat + "," + lng
		}
	case entity.TypeSpotify:
		if m := spotifyItem.FindStringSubmatch(raw); m != nil {
			return "https://open.spotify.com/" + m[1] + "/" + m[2]
		}
	case entity.TypeGoogleReviews:
		if id := extract(googlePlaceID, raw); id != "" {
			return "https://search.google.com/local/writereview?placeid=" + id
		}
	}
	return raw
}

// profileSite describes a site where a profile is either pasted as a full URL or given as
// a path under base.
type profileSite struct {
	base   string
	domain *regexp.Regexp
}

var profileSites = map[entity.QRType]profileSite{
	entity.TypeCalendly: {"https://calendly.com/", regexp.MustCompile(`(?i)^(?:www\.)?calendly\.com/`)},
	entity.TypeZillow:   {"https://www.zillow.com/profile/", regexp.MustCompile(`(?i)^(?:www\.)?zillow\.com/profile/`)},
	entity.TypeRedfin:   {"https://www.redfin.com/agent/", regexp.MustCompile(`(?i)^(?:www\.)?redfin\.com/agent/`)},
	entity.TypeRealtor:  {"https://www.realtor.com/agent/", regexp.MustCompile(`(?i)^(?:www\.)?realtor\.com/(?:agent|realestateagents)/`)},
}

func encodeProfile(t entity.QRType, site profileSite, fields entity.FormFields) string {
	v := firstNonBlank(fields.Get(FieldURL), fields.Get(FieldHandle), value(t, entity.FormFields{}, FieldURL))
	if hasScheme.MatchString(v) {
		return v
	}
	v = site.domain.ReplaceAllString(v, "")
	return site.base + strings.TrimPrefix(v, "/")
}
