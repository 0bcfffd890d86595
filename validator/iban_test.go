package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// one published example per country
var validIBANs = []string{
	"GB82WEST12345698765432",
	"DE89370400440532013000",
	"FR1420041010050500013M02606",
	"NL91ABNA0417164300",
	"BE68539007547034",
	"CH9300762011623852957",
	"ES9121000418450200051332",
	"IT60X0542811101000000123456",
	"AT611904300234573201",
	"NO9386011117947",
	"DK5000400440116243",
	"FI2112345600000785",
	"SE4550000000058398257466",
	"PL61109010140000071219812874",
	"IE29AIBK93115212345678",
}

func TestValidateIBAN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		optional bool
		want     State
	}{
		{"valid", "GB82WEST12345698765432", false, Valid()},
		{"valid with spaces and lower case", "gb82 west 1234 5698 7654 32", false, Valid()},
		{"empty", "", false, Empty()},
		{"empty optional", "", true, Valid()},
		{"too short", "DE00", false, Incomplete(ReasonIncompleteIBAN)},
		{"one letter", "G", false, Incomplete(ReasonIncompleteIBAN)},
		{"digits first", "12WEST12345698765432", false, Invalid(ReasonShouldStartWithCountryCode)},
		{"single digit", "1", false, Invalid(ReasonShouldStartWithCountryCode)},
		{"letter then digit", "G1", false, Invalid(ReasonShouldStartWithCountryCode)},
		{"unknown country", "ZZ82WEST12345698765432", false, Invalid(ReasonInvalidCountryCode)},
		{"too long", "GB82WEST123456987654321234567890123", false, Invalid(ReasonInvalidFormat)},
		{"bad characters", "GB82-WEST", false, Invalid(ReasonInvalidFormat)},
		{"wrong check digits", "GB83WEST12345698765432", false, Invalid(ReasonInvalidFormat)},
		{"non-ascii", "GBé2WEST12345698765432", false, Invalid(ReasonInvalidFormat)},
		{"non-ascii country", "ÉB82WEST12345698765432", false, Invalid(ReasonShouldStartWithCountryCode)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateIBAN(tt.input, tt.optional))
		})
	}
}

func TestValidIBANsPassChecksum(t *testing.T) {
	for _, iban := range validIBANs {
		assert.True(t, ibanChecksumValid(iban), iban)
		assert.Equal(t, Valid(), ValidateIBAN(iban, false), iban)
	}
}

func TestIBANChecksumDetectsSubstitutions(t *testing.T) {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	total, detected := 0, 0
	for _, iban := range validIBANs {
		for pos := 0; pos < len(iban); pos++ {
			for i := 0; i < len(alphabet); i++ {
				if alphabet[i] == iban[pos] {
					continue
				}
				mutated := iban[:pos] + string(alphabet[i]) + iban[pos+1:]
				total++
				if !ibanChecksumValid(mutated) {
					detected++
				}
			}
		}
	}
	require.NotZero(t, total)
	assert.GreaterOrEqual(t, float64(detected)/float64(total), 97.0/98.0)
}

func TestIsCountryCode(t *testing.T) {
	assert.True(t, IsCountryCode("GB"))
	assert.True(t, IsCountryCode("XK"))
	assert.False(t, IsCountryCode("gb"))
	assert.False(t, IsCountryCode("ZZ"))
	assert.False(t, IsCountryCode("UK"))
}
