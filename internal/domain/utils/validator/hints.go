package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/payload"
	"github.com/Badsnus/qrgen-studio/internal/domain/utils/calendar"
)

// Hint is an advisory message for one field. Hints never block encoding: the encoder
// still produces a payload for whatever was typed.
type Hint struct {
	Field   string
	Message string
}

type check struct {
	valid   func(string, map[string]interface{}) bool
	message string
}

var byKind = map[payload.InputKind]check{
	payload.KindEmail:    {Email, "This does not look like an email address"},
	payload.KindTel:      {Phone, "Phone numbers need 7 to 15 digits"},
	payload.KindURL:      {URL, "This does not look like a link"},
	payload.KindNumber:   {Amount, "Use a positive number, e.g. 10.50"},
	payload.KindDateTime: {EventTime, "Use a date and time like 2026-01-31T18:30"},
}

var cryptoAddress = check{CryptoAddress, "Wallet addresses are 25 to 100 letters and digits"}

// Hints checks every non-blank field of t's form.
func Hints(t entity.QRType, fields entity.FormFields) []Hint {
	var hints []Hint
	params := map[string]interface{}{}
	for k, v := range fields {
		params[k] = v
	}

	for _, f := range payload.Schema(t) {
		v := fields.Get(f.Name)
		if v == "" {
			continue
		}
		c, ok := byKind[f.Kind]
		if f.Name == payload.FieldCryptoAddress {
			c, ok = cryptoAddress, true
		}
		if f.Name == payload.FieldHandle || (f.Kind == payload.KindURL && isProfileType(t)) {
			continue
		}
		if ok && !c.valid(v, params) {
			hints = append(hints, Hint{Field: f.Name, Message: c.message})
		}
	}

	if t == entity.TypeEvent && !EventEnd(fields.Get(payload.FieldEnd), params) {
		hints = append(hints, Hint{Field: payload.FieldEnd, Message: "The event ends before it starts"})
	}
	return hints
}

// Profile types accept a bare path as well as a link.
func isProfileType(t entity.QRType) bool {
	switch t {
	case entity.TypeCalendly, entity.TypeZillow, entity.TypeRedfin, entity.TypeRealtor:
		return true
	}
	return false
}

func Amount(amount string, _ map[string]interface{}) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	return err == nil && v > 0
}

func EventTime(value string, _ map[string]interface{}) bool {
	_, err := calendar.ParseTime(value)
	return err == nil
}

// EventEnd passes when either bound is missing or unparseable (EventTime reports those)
// and otherwise requires the end to come after the start.
func EventEnd(end string, params map[string]interface{}) bool {
	startStr, _ := params[payload.FieldStart].(string)
	if strings.TrimSpace(end) == "" || strings.TrimSpace(startStr) == "" {
		return true
	}
	start, err := calendar.ParseTime(startStr)
	if err != nil {
		return true
	}
	endTime, err := calendar.ParseTime(end)
	if err != nil {
		return true
	}
	return endTime.After(start)
}

var walletChars = regexp.MustCompile(`^[A-Za-z0-9_:-]{25,100}$`)

func CryptoAddress(address string, _ map[string]interface{}) bool {
	return walletChars.MatchString(strings.TrimSpace(address))
}
