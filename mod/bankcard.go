package mod

import "strings"

type Brand uint8

const (
	BrandUnknown Brand = iota
	BrandVisa
	BrandMastercard
	BrandAmex
	BrandDiscover
	BrandDinersClub
	BrandJCB
	BrandUnionPay
	BrandCartesBancaires
)

var brandCodes = [...]string{
	BrandUnknown:         "UNKNOWN",
	BrandVisa:            "VISA",
	BrandMastercard:      "MASTERCARD",
	BrandAmex:            "AMERICAN_EXPRESS",
	BrandDiscover:        "DISCOVER",
	BrandDinersClub:      "DINERS_CLUB",
	BrandJCB:             "JCB",
	BrandUnionPay:        "UNIONPAY",
	BrandCartesBancaires: "CARTES_BANCAIRES",
}

var brandNames = [...]string{
	BrandUnknown:         "unknown",
	BrandVisa:            "visa",
	BrandMastercard:      "mastercard",
	BrandAmex:            "amex",
	BrandDiscover:        "discover",
	BrandDinersClub:      "diners",
	BrandJCB:             "jcb",
	BrandUnionPay:        "unionpay",
	BrandCartesBancaires: "cartes_bancaires",
}

// String returns the wire code of the brand, e.g. AMERICAN_EXPRESS.
func (b Brand) String() string {
	if int(b) < len(brandCodes) {
		return brandCodes[b]
	}
	return brandCodes[BrandUnknown]
}

// Name returns the short lowercase name of the brand, e.g. amex.
func (b Brand) Name() string {
	if int(b) < len(brandNames) {
		return brandNames[b]
	}
	return brandNames[BrandUnknown]
}

// ParseBrand accepts wire codes and short names in any case. Anything it
// does not recognise is BrandUnknown.
func ParseBrand(s string) Brand {
	s = strings.TrimSpace(s)
	for i := range brandCodes {
		if strings.EqualFold(s, brandCodes[i]) || strings.EqualFold(s, brandNames[i]) {
			return Brand(i)
		}
	}
	return BrandUnknown
}

func (b Brand) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Brand) UnmarshalText(text []byte) error {
	*b = ParseBrand(string(text))
	return nil
}
