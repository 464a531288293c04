package payload

import "github.com/Badsnus/qrgen-studio/internal/domain/entity"

// InputKind tells a form layer which widget to render.
type InputKind string

const (
	KindText     InputKind = "text"
	KindTextArea InputKind = "textarea"
	KindURL      InputKind = "url"
	KindEmail    InputKind = "email"
	KindTel      InputKind = "tel"
	KindNumber   InputKind = "number"
	KindDateTime InputKind = "datetime"
	KindSelect   InputKind = "select"
)

// Field describes one input of a type's form. Fallback is what the encoder uses when the
// field is blank; an empty Fallback means the field is optional and is simply left out.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Kind        InputKind
	Fallback    string
	Options     []string
}

// Field names shared across types.
const (
	FieldURL           = "url"
	FieldText          = "text"
	FieldSSID          = "ssid"
	FieldPassword      = "password"
	FieldSecurity      = "security"
	FieldEmail         = "email"
	FieldSubject       = "subject"
	FieldBody          = "body"
	FieldPhone         = "phone"
	FieldMessage       = "message"
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldCompany       = "company"
	FieldTitle         = "title"
	FieldWebsite       = "website"
	FieldStart         = "start"
	FieldEnd           = "end"
	FieldLocation      = "location"
	FieldDescription   = "description"
	FieldHandle        = "handle"
	FieldCryptoCoin    = "cryptoCoin"
	FieldCryptoAddress = "cryptoAddress"
	FieldCryptoAmount  = "cryptoAmount"
	FieldAmount        = "amount"
)

const (
	SiteURL       = "https://qrgen.studio"
	samplePhone   = "+15551234567"
	sampleHandle  = "username"
	sampleBTC     = "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"
	eventStartDef = "20260101T100000"
	eventEndDef   = "20260101T110000"
)

func handleField(placeholder string) Field {
	return Field{Name: FieldHandle, Label: "Username", Placeholder: placeholder, Kind: KindText, Fallback: sampleHandle}
}

func urlField(label, placeholder, fallback string) Field {
	return Field{Name: FieldURL, Label: label, Placeholder: placeholder, Kind: KindURL, Fallback: fallback}
}

var cryptoFields = []Field{
	{Name: FieldCryptoCoin, Label: "Coin", Kind: KindSelect, Options: coinIDs()},
	{Name: FieldCryptoAddress, Label: "Wallet Address", Placeholder: "bc1q...", Kind: KindText},
	{Name: FieldCryptoAmount, Label: "Amount - optional", Placeholder: "0.01", Kind: KindNumber},
}

var schemas = map[entity.QRType][]Field{
	entity.TypeURL:  {urlField("Website URL", "https://yourwebsite.com", SiteURL)},
	entity.TypeText: {{Name: FieldText, Label: "Your Text", Placeholder: "Enter any text...", Kind: KindTextArea, Fallback: "Sample text"}},
	entity.TypeWiFi: {
		{Name: FieldSSID, Label: "Network Name (SSID)", Placeholder: "My WiFi", Kind: KindText, Fallback: "Network"},
		{Name: FieldPassword, Label: "Password", Placeholder: "Password", Kind: KindText},
		{Name: FieldSecurity, Label: "Security Type", Kind: KindSelect, Fallback: "WPA", Options: []string{"WPA", "WEP", "nopass"}},
	},
	entity.TypeEmail: {
		{Name: FieldEmail, Label: "Email Address", Placeholder: "email@example.com", Kind: KindEmail, Fallback: "hello@example.com"},
		{Name: FieldSubject, Label: "Subject (optional)", Placeholder: "Email subject", Kind: KindText},
		{Name: FieldBody, Label: "Message (optional)", Placeholder: "Email body", Kind: KindTextArea},
	},
	entity.TypePhone: {{Name: FieldPhone, Label: "Phone Number", Placeholder: "+1 (555) 123-4567", Kind: KindTel, Fallback: samplePhone}},
	entity.TypeSMS: {
		{Name: FieldPhone, Label: "Phone Number", Placeholder: "+1 (555) 123-4567", Kind: KindTel, Fallback: samplePhone},
		{Name: FieldMessage, Label: "Message", Placeholder: "SMS message", Kind: KindTextArea},
	},
	entity.TypeVCard: {
		{Name: FieldFirstName, Label: "First Name", Placeholder: "John", Kind: KindText},
		{Name: FieldLastName, Label: "Last Name", Placeholder: "Doe", Kind: KindText},
		{Name: FieldPhone, Label: "Phone", Placeholder: "+1 (555) 123-4567", Kind: KindTel},
		{Name: FieldEmail, Label: "Email", Placeholder: "john@example.com", Kind: KindEmail},
		{Name: FieldCompany, Label: "Company", Placeholder: "Acme Inc.", Kind: KindText},
		{Name: FieldTitle, Label: "Job Title", Placeholder: "CEO", Kind: KindText},
		{Name: FieldWebsite, Label: "Website", Placeholder: "https://example.com", Kind: KindURL},
	},
	entity.TypeEvent: {
		{Name: FieldTitle, Label: "Event Title", Placeholder: "Meeting", Kind: KindText},
		{Name: FieldStart, Label: "Start", Kind: KindDateTime, Fallback: eventStartDef},
		{Name: FieldEnd, Label: "End", Kind: KindDateTime, Fallback: eventEndDef},
		{Name: FieldLocation, Label: "Location", Placeholder: "Conference Room A", Kind: KindText},
		{Name: FieldDescription, Label: "Description", Placeholder: "Event details", Kind: KindTextArea},
	},

	entity.TypeWhatsApp: {
		{Name: FieldPhone, Label: "Phone Number", Placeholder: "+1 (555) 123-4567", Kind: KindTel, Fallback: samplePhone},
		{Name: FieldMessage, Label: "Pre-filled Message", Placeholder: "Hello!", Kind: KindTextArea},
	},
	entity.TypeTelegram:  {handleField("@username")},
	entity.TypeMessenger: {handleField("@username")},
	entity.TypeDiscord:   {handleField("invite code")},
	entity.TypeThreads:   {handleField("@username")},
	entity.TypeInstagram: {handleField("@username")},
	entity.TypeFacebook:  {handleField("username")},
	entity.TypeTwitter:   {handleField("@handle")},
	entity.TypeLinkedIn:  {handleField("username")},
	entity.TypeTikTok:    {handleField("@username")},
	entity.TypeSnapchat:  {handleField("@username")},
	entity.TypeYouTube:   {urlField("Video or Channel URL", "https://youtube.com/watch?v=...", "https://youtube.com")},
	entity.TypePinterest: {handleField("@username")},
	entity.TypeReddit:    {handleField("u/username")},
	entity.TypeTwitch:    {handleField("username")},
	entity.TypeMedium:    {handleField("@username")},
	entity.TypeGitHub:    {handleField("username")},

	entity.TypeCrypto:   cryptoFields,
	entity.TypeBitcoin:  cryptoFields,
	entity.TypeEthereum: cryptoFields,
	entity.TypeSolana:   cryptoFields,
	entity.TypeXRP:      cryptoFields,
	entity.TypeBNB:      cryptoFields,
	entity.TypeTON:      cryptoFields,
	entity.TypePayPal: {
		handleField("username"),
		{Name: FieldAmount, Label: "Amount - optional", Placeholder: "10.00", Kind: KindNumber},
	},
	entity.TypeVenmo: {
		handleField("@username"),
		{Name: FieldMessage, Label: "Note - optional", Placeholder: "Pizza", Kind: KindText},
	},
	entity.TypeCashApp: {handleField("$Cashtag")},

	entity.TypeAppStore:      {urlField("App URL", "https://apps.apple.com/app/id...", "https://apps.apple.com")},
	entity.TypeGooglePlay:    {urlField("App URL", "https://play.google.com/store/apps/details?id=...", "https://play.google.com")},
	entity.TypeAmazon:        {urlField("Product URL", "https://amazon.com/dp/...", "https://amazon.com")},
	entity.TypeGoogleMaps:    {urlField("Location", "Coordinates or maps URL", "https://maps.google.com")},
	entity.TypeAppleMaps:     {urlField("Location", "Coordinates or maps URL", "http://maps.apple.com")},
	entity.TypeSpotify:       {urlField("Track/Playlist URL", "https://open.spotify.com/...", "https://spotify.com")},
	entity.TypeWebsite:       {urlField("URL", "https://...", "https://example.com")},
	entity.TypeCalendly:      {urlField("Calendly link", "calendly.com/username", sampleHandle)},
	entity.TypeZillow:        {urlField("Zillow profile", "zillow.com/profile", "profile")},
	entity.TypeRedfin:        {urlField("Redfin agent page", "redfin.com/agent", "agent")},
	entity.TypeRealtor:       {urlField("Realtor.com profile", "realtor.com/profile", "profile")},
	entity.TypeApartments:    {urlField("Listing URL", "apartments.com/listing", "https://www.apartments.com")},
	entity.TypeGoogleReviews: {urlField("Google Maps place URL", "Search for your business", "https://search.google.com/local/writereview")},
}

// Schema returns the form fields of a type, in display order. Unknown types have none.
func Schema(t entity.QRType) []Field {
	return schemas[t]
}

// HasData reports whether fields carry anything of the user's that would end up in the
// payload of t. Fields kept from another type count when the encoder reads them, like a
// handle typed under instagram and then shown under calendly.
func HasData(t entity.QRType, fields entity.FormFields) bool {
	if schemaHasData(t, fields) {
		return true
	}
	return Encode(t, fields) != Encode(t, selectorsOnly(fields))
}

// selectorsOnly keeps the fields that pick a variant (security mode, coin) and are not
// user data themselves.
func selectorsOnly(fields entity.FormFields) entity.FormFields {
	out := entity.FormFields{}
	for _, name := range []string{FieldSecurity, FieldCryptoCoin} {
		if v, ok := fields[name]; ok {
			out[name] = v
		}
	}
	return out
}

func schemaHasData(t entity.QRType, fields entity.FormFields) bool {
	for _, f := range schemas[t] {
		if f.Name == FieldSecurity || f.Name == FieldCryptoCoin {
			continue
		}
		if fields.Get(f.Name) != "" {
			return true
		}
	}
	return false
}

// value returns the trimmed field value or, when blank, the schema fallback of that field.
func value(t entity.QRType, fields entity.FormFields, name string) string {
	if v := fields.Get(name); v != "" {
		return v
	}
	for _, f := range schemas[t] {
		if f.Name == name {
			return f.Fallback
		}
	}
	return ""
}
