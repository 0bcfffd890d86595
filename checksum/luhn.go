// Package checksum implements the check-digit algorithms used by the
// validators: Luhn for card numbers and ISO 7064 mod-97-10 for IBANs.
package checksum

// Luhn reports whether digits passes the mod-10 check. Empty input and
// input containing anything other than ASCII digits never pass.
func Luhn(digits string) bool {
	if digits == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}
