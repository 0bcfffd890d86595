package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestExpiryValidator(t *testing.T) {
	v := ExpiryValidator{Now: fixedNow(2026, time.October, 18)}

	tests := []struct {
		input string
		want  State
	}{
		{"", Empty()},
		{"1", Incomplete(ReasonIncompleteExpiry)},
		{"9", Incomplete(ReasonIncompleteExpiry)},
		{"02", Incomplete(ReasonIncompleteExpiry)},
		{"12", Incomplete(ReasonIncompleteExpiry)},
		{"023", Incomplete(ReasonIncompleteExpiry)},
		{"00", Invalid(ReasonInvalidMonth)},
		{"13", Invalid(ReasonInvalidMonth)},
		{"134", Invalid(ReasonInvalidMonth)},
		{"1330", Invalid(ReasonInvalidMonth)},
		{"1026", Valid()},
		{"0926", Invalid(ReasonExpired)},
		{"1225", Invalid(ReasonExpired)},
		{"0230", Valid()},
		{"02/30", Valid()},
		{"023099", Valid()},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(tt.input))
		})
	}
}

func TestExpiryAroundFebruary2030(t *testing.T) {
	before := ExpiryValidator{Now: fixedNow(2030, time.January, 31)}
	during := ExpiryValidator{Now: fixedNow(2030, time.February, 28)}
	after := ExpiryValidator{Now: fixedNow(2030, time.March, 1)}

	assert.Equal(t, Valid(), before.Validate("0230"))
	assert.Equal(t, Valid(), during.Validate("0230"))
	assert.Equal(t, Invalid(ReasonExpired), after.Validate("0230"))
}

func TestExpiryValidatorDefaultsToNow(t *testing.T) {
	var v ExpiryValidator
	assert.Equal(t, Invalid(ReasonExpired), v.Validate("0100"))
	assert.Equal(t, Valid(), v.Validate("1299"))
}

func TestParseExpiry(t *testing.T) {
	month, year, err := ParseExpiry("02/30")
	require.NoError(t, err)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2030, year)

	_, _, err = ParseExpiry("130")
	assert.ErrorIs(t, err, ErrInvalidExpiry)
	_, _, err = ParseExpiry("1330")
	assert.ErrorIs(t, err, ErrInvalidExpiry)
}
