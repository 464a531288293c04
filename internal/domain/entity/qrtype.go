package entity

// QRType is the semantic category of a payload. It decides which form fields are
// shown and how they are encoded.
type QRType string

const (
	TypeURL   QRType = "url"
	TypeText  QRType = "text"
	TypeWiFi  QRType = "wifi"
	TypeEmail QRType = "email"
	TypePhone QRType = "phone"
	TypeSMS   QRType = "sms"

	TypeVCard QRType = "vcard"
	TypeEvent QRType = "event"

	TypeWhatsApp  QRType = "whatsapp"
	TypeTelegram  QRType = "telegram"
	TypeMessenger QRType = "messenger"
	TypeDiscord   QRType = "discord"
	TypeThreads   QRType = "threads"
	TypeInstagram QRType = "instagram"
	TypeFacebook  QRType = "facebook"
	TypeTwitter   QRType = "twitter"
	TypeLinkedIn  QRType = "linkedin"
	TypeTikTok    QRType = "tiktok"
	TypeSnapchat  QRType = "snapchat"
	TypeYouTube   QRType = "youtube"
	TypePinterest QRType = "pinterest"
	TypeReddit    QRType = "reddit"
	TypeTwitch    QRType = "twitch"
	TypeMedium    QRType = "medium"
	TypeGitHub    QRType = "github"

	TypeCrypto   QRType = "crypto"
	TypeBitcoin  QRType = "bitcoin"
	TypeEthereum QRType = "ethereum"
	TypeSolana   QRType = "solana"
	TypeXRP      QRType = "xrp"
	TypeBNB      QRType = "bnb"
	TypeTON      QRType = "ton"
	TypePayPal   QRType = "paypal"
	TypeVenmo    QRType = "venmo"
	TypeCashApp  QRType = "cashapp"

	TypeSpotify       QRType = "spotify"
	TypeWebsite       QRType = "website"
	TypeAppStore      QRType = "appstore"
	TypeGooglePlay    QRType = "googleplay"
	TypeAmazon        QRType = "amazon"
	TypeGoogleMaps    QRType = "googlemaps"
	TypeAppleMaps     QRType = "applemaps"
	TypeCalendly      QRType = "calendly"
	TypeZillow        QRType = "zillow"
	TypeRedfin        QRType = "redfin"
	TypeRealtor       QRType = "realtor"
	TypeApartments    QRType = "apartments"
	TypeGoogleReviews QRType = "googlereviews"
)

// Category groups types in the type picker.
type Category string

const (
	CategoryCore     Category = "core"
	CategoryBusiness Category = "business"
	CategorySocial   Category = "social"
	CategoryPayment  Category = "payment"
	CategoryPlatform Category = "platform"
)

// TypeInfo describes a QRType for listing and form rendering.
type TypeInfo struct {
	Type     QRType
	Label    string
	Category Category
}

// Types is the ordered list of every supported type.
var Types = []TypeInfo{
	{TypeURL, "URL", CategoryCore},
	{TypeText, "Text", CategoryCore},
	{TypeWiFi, "WiFi", CategoryCore},
	{TypeEmail, "Email", CategoryCore},
	{TypePhone, "Phone", CategoryCore},
	{TypeSMS, "SMS", CategoryCore},

	{TypeVCard, "vCard", CategoryBusiness},
	{TypeEvent, "Event", CategoryBusiness},

	{TypeWhatsApp, "WhatsApp", CategorySocial},
	{TypeTelegram, "Telegram", CategorySocial},
	{TypeMessenger, "Messenger", CategorySocial},
	{TypeDiscord, "Discord", CategorySocial},
	{TypeThreads, "Threads", CategorySocial},
	{TypeInstagram, "Instagram", CategorySocial},
	{TypeFacebook, "Facebook", CategorySocial},
	{TypeTwitter, "X", CategorySocial},
	{TypeLinkedIn, "LinkedIn", CategorySocial},
	{TypeTikTok, "TikTok", CategorySocial},
	{TypeSnapchat, "Snapchat", CategorySocial},
	{TypeYouTube, "YouTube", CategorySocial},
	{TypePinterest, "Pinterest", CategorySocial},
	{TypeReddit, "Reddit", CategorySocial},
	{TypeTwitch, "Twitch", CategorySocial},
	{TypeMedium, "Medium", CategorySocial},
	{TypeGitHub, "GitHub", CategorySocial},

	{TypeCrypto, "Crypto", CategoryPayment},
	{TypeBitcoin, "Bitcoin", CategoryPayment},
	{TypeEthereum, "Ethereum", CategoryPayment},
	{TypeSolana, "Solana", CategoryPayment},
	{TypeXRP, "XRP", CategoryPayment},
	{TypeBNB, "BNB", CategoryPayment},
	{TypeTON, "TON", CategoryPayment},
	{TypePayPal, "PayPal", CategoryPayment},
	{TypeVenmo, "Venmo", CategoryPayment},
	{TypeCashApp, "Cash App", CategoryPayment},

	{TypeAppStore, "App Store", CategoryPlatform},
	{TypeGooglePlay, "Play Store", CategoryPlatform},
	{TypeAmazon, "Amazon", CategoryPlatform},
	{TypeGoogleMaps, "Google Maps", CategoryPlatform},
	{TypeAppleMaps, "Apple Maps", CategoryPlatform},
	{TypeSpotify, "Spotify", CategoryPlatform},
	{TypeWebsite, "Website", CategoryPlatform},
	{TypeCalendly, "Calendly", CategoryPlatform},
	{TypeZillow, "Zillow", CategoryPlatform},
	{TypeRedfin, "Redfin", CategoryPlatform},
	{TypeRealtor, "Realtor.com", CategoryPlatform},
	{TypeApartments, "Apartments.com", CategoryPlatform},
	{TypeGoogleReviews, "Google Reviews", CategoryPlatform},
}

// Info returns the TypeInfo for t. Unknown types report false.
func (t QRType) Info() (TypeInfo, bool) {
	for _, info := range Types {
		if info.Type == t {
			return info, true
		}
	}
	return TypeInfo{}, false
}

// Valid reports whether t is one of the supported types.
func (t QRType) Valid() bool {
	_, ok := t.Info()
	return ok
}
