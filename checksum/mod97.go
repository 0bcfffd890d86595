package checksum

import "github.com/pkg/errors"

var ErrNotNumeric = errors.New("checksum: not a decimal digit string")

// Mod97 returns digits, read as one big decimal number, modulo 97.
func Mod97(digits string) (int, error) {
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, errors.Wrapf(ErrNotNumeric, "position %d", i)
		}
	}

	r := 0
	start := 0
	if len(digits) >= 2 {
		// the first two digits go in as one chunk
		r = (int(digits[0]-'0')*10 + int(digits[1]-'0')) % 97
		start = 2
	}
	for i := start; i < len(digits); i++ {
		r = (r*10 + int(digits[i]-'0')) % 97
	}
	return r, nil
}
