package validator

import "git.thinkinpower.net/cardmeta/mod"

const (
	defaultCVCLength = 3
	maxCVCLength     = 4
)

var cvcLengths = map[mod.Brand]int{
	mod.BrandAmex: 4,
}

// CVCLength is the number of digits a CVC of brand must have.
func CVCLength(brand mod.Brand) int {
	if n, ok := cvcLengths[brand]; ok {
		return n
	}
	return defaultCVCLength
}

// ValidateCVC checks only the length of the CVC; there is no check digit.
func ValidateCVC(input string, brand mod.Brand, optional bool) State {
	digits := digitsOnly(input)
	if len(digits) > maxCVCLength {
		digits = digits[:maxCVCLength]
	}
	if digits == "" {
		if optional {
			return Valid()
		}
		return Empty()
	}
	if len(digits) < CVCLength(brand) {
		return Incomplete(ReasonIncompleteCVC)
	}
	return Valid()
}
