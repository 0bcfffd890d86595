package mod

import "strings"

type BinRange struct {
	Low       string `json:"account_range_low"`
	High      string `json:"account_range_high"`
	PanLength int    `json:"pan_length"`
	Brand     Brand  `json:"brand"`
	Country   string `json:"country,omitempty"` //ISO 3166-1 alpha-2
	Funding   string `json:"funding,omitempty"` //credit, debit, prepaid
	BankName  string `json:"bank_name,omitempty"`
	//learned from a metadata fetch rather than the bootstrap table
	NetworkSourced bool `json:"-"`
}

// Key returns the identity used to de-duplicate ranges in a database.
func (r BinRange) Key() string {
	return strings.Join([]string{r.Low, r.High, r.Brand.String()}, ":")
}

// MaskPAN keeps the first six and last four digits.
func MaskPAN(pan string) string {
	length := len(pan)
	if length <= 10 {
		if length <= 6 {
			return pan
		}
		return pan[:6] + strings.Repeat("*", length-6)
	}
	return pan[:6] + strings.Repeat("*", length-10) + pan[length-4:]
}
