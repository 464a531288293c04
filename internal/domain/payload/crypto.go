package payload

import (
	"regexp"
	"strings"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

type coin struct {
	ID     string
	Scheme string
	Sample string
}

var coins = []coin{
	{"bitcoin", "bitcoin", sampleBTC},
	{"ethereum", "ethereum", "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"},
	{"solana", "solana", "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV"},
	{"xrp", "ripple", "rEb8TK3gBgk5auZkwc6sHnwrGVJH8DuaLh"},
	{"bnb", "bnb", "bnb1grpf0955h0ykzq3ar5nmum7y6gdfl6lxfn46h2"},
	{"ton", "ton", "EQD2NmD_lH5f5u1Kj3KfGyTvhZSX0Eg6qp2a5IQUKXxOG21n"},
	{"litecoin", "litecoin", "ltc1qg82tqjvx4x3sj5r8h6y5cwm6fkm7p5gxcy4l5v"},
	{"dogecoin", "dogecoin", "DH5yaieqoZN36fDVciNyRueRGvGLR3mr7L"},
}

func coinIDs() []string {
	ids := make([]string, len(coins))
	for i, c := range coins {
		ids[i] = c.ID
	}
	return ids
}

func lookupCoin(id string) (coin, bool) {
	for _, c := range coins {
		if c.ID == id {
			return c, true
		}
	}
	return coin{}, false
}

// coinFor picks the coin: the explicit field first, then the type itself for
// coin-specific types, then bitcoin.
func coinFor(t entity.QRType, fields entity.FormFields) coin {
	id := strings.ToLower(fields.Get(FieldCryptoCoin))
	if id == "" && t != entity.TypeCrypto {
		id = string(t)
	}
	if c, ok := lookupCoin(id); ok {
		return c
	}
	if id == "" {
		c, _ := lookupCoin("bitcoin")
		return c
	}
	// Unknown coins use their id as the URI scheme, reduced to the characters a scheme
	// allows.
	scheme := strings.TrimLeft(schemeJunk.ReplaceAllString(id, ""), "0123456789+.-")
	if scheme == "" {
		c, _ := lookupCoin("bitcoin")
		return c
	}
	return coin{ID: id, Scheme: scheme, Sample: sampleBTC}
}

var schemeJunk = regexp.MustCompile(`[^a-z0-9+.-]`)

func encodeCrypto(t entity.QRType, fields entity.FormFields) string {
	c := coinFor(t, fields)
	address := firstNonBlank(fields.Get(FieldCryptoAddress), fields.Get("address"), c.Sample)
	amount := firstNonBlank(fields.Get(FieldCryptoAmount), fields.Get(FieldAmount))
	out := c.Scheme + ":" + address
	if amount != "" {
		out += "?amount=" + queryEscape(amount)
	}
	return out
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
