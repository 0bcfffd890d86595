package binrange

import (
	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/mod"
	"github.com/pkg/errors"
)

var ErrInvalidRange = errors.New("invalid bin range")

// Validate checks a range that did not come from the bootstrap table.
func Validate(r mod.BinRange) error {
	if !isDigits(r.Low) || !isDigits(r.High) {
		return errors.Wrapf(ErrInvalidRange, "bounds %q-%q are not digit strings", r.Low, r.High)
	}
	if compareTruncated(r.Low, r.High) > 0 {
		return errors.Wrapf(ErrInvalidRange, "low bound %s is above high bound %s", r.Low, r.High)
	}
	if r.PanLength < data.MinPanLength || r.PanLength > data.MaxPanLength {
		return errors.Wrapf(ErrInvalidRange, "pan length %d", r.PanLength)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
