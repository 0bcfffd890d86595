package validator

import (
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidExpiry = errors.New("expiry must be MMYY with a month between 01 and 12")

const expiryDigits = 4

// ExpiryValidator checks MMYY expiry dates. Years are read as 20YY.
type ExpiryValidator struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

func (v ExpiryValidator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func (v ExpiryValidator) Validate(input string) State {
	digits := digitsOnly(input)
	if len(digits) > expiryDigits {
		digits = digits[:expiryDigits]
	}

	switch len(digits) {
	case 0:
		return Empty()
	case 1:
		return Incomplete(ReasonIncompleteExpiry)
	case 2, 3:
		if _, ok := parseMonth(digits[:2]); !ok {
			return Invalid(ReasonInvalidMonth)
		}
		return Incomplete(ReasonIncompleteExpiry)
	}

	month, ok := parseMonth(digits[:2])
	if !ok {
		return Invalid(ReasonInvalidMonth)
	}
	year := 2000 + int(digits[2]-'0')*10 + int(digits[3]-'0')

	now := v.now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return Invalid(ReasonExpired)
	}
	return Valid()
}

// ParseExpiry reads a complete MMYY expiry, ignoring separators.
func ParseExpiry(input string) (month, year int, err error) {
	digits := digitsOnly(input)
	if len(digits) != expiryDigits {
		return 0, 0, errors.Wrapf(ErrInvalidExpiry, "got %d digits", len(digits))
	}
	month, ok := parseMonth(digits[:2])
	if !ok {
		return 0, 0, errors.Wrapf(ErrInvalidExpiry, "month %s", digits[:2])
	}
	return month, 2000 + int(digits[2]-'0')*10 + int(digits[3]-'0'), nil
}

func parseMonth(mm string) (int, bool) {
	month := int(mm[0]-'0')*10 + int(mm[1]-'0')
	return month, month >= 1 && month <= 12
}
