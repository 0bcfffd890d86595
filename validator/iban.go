package validator

import "git.thinkinpower.net/cardmeta/checksum"

const (
	minIBANLength = 8
	maxIBANLength = 34
)

// SanitizeIBAN removes whitespace and upper-cases ASCII letters.
func SanitizeIBAN(input string) string {
	buf := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func ValidateIBAN(input string, optional bool) State {
	iban := SanitizeIBAN(input)
	if iban == "" {
		if optional {
			return Valid()
		}
		return Empty()
	}

	country := iban
	if len(country) > 2 {
		country = country[:2]
	}
	if !isUpperLetters(country) {
		return Invalid(ReasonShouldStartWithCountryCode)
	}
	if len(country) < 2 {
		return Incomplete(ReasonIncompleteIBAN)
	}
	if !IsCountryCode(country) {
		return Invalid(ReasonInvalidCountryCode)
	}
	if len(iban) > maxIBANLength || !isAlphanumeric(iban) {
		return Invalid(ReasonInvalidFormat)
	}
	if len(iban) < minIBANLength {
		return Incomplete(ReasonIncompleteIBAN)
	}
	if !ibanChecksumValid(iban) {
		return Invalid(ReasonInvalidFormat)
	}
	return Valid()
}

// ibanChecksumValid moves the country code and check digits to the end,
// spells every letter as two digits (A=10 ... Z=35) and expects the result
// to be 1 modulo 97.
func ibanChecksumValid(iban string) bool {
	if len(iban) < 4 {
		return false
	}
	rearranged := iban[4:] + iban[:4]

	buf := make([]byte, 0, 2*len(rearranged))
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			buf = append(buf, c)
		case c >= 'A' && c <= 'Z':
			n := c - 'A' + 10
			buf = append(buf, '0'+n/10, '0'+n%10)
		default:
			return false
		}
	}

	r, err := checksum.Mod97(string(buf))
	return err == nil && r == 1
}

func isUpperLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
