// Package binrange resolves card numbers against numeric prefix intervals.
//
// Bounds are digit strings of any length. A number is compared against a
// bound by truncating whichever of the two is longer to the length of the
// shorter one, so "4" matches the interval 4000000000000000-4999999999999999
// and "4242424242424242" matches the interval 40-49. Among all matching
// intervals the one with the longest low bound is the most specific.
package binrange

import (
	"sort"

	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/mod"
)

// brands whose cards come in more than one length; a prefix of one of these
// needs a metadata lookup before its length can be trusted
var variableLengthBrands = map[mod.Brand]bool{
	mod.BrandUnionPay: true,
}

// IsVariableLengthBrand reports whether cards of brand b have no single
// fixed length.
func IsVariableLengthBrand(b mod.Brand) bool {
	return variableLengthBrands[b]
}

// Table is an ordered list of ranges. Order only matters to break ties
// between equally specific matches: the earlier range wins.
type Table []mod.BinRange

// Matches reports whether number falls within r under truncated comparison.
func Matches(r mod.BinRange, number string) bool {
	return compareTruncated(number, r.Low) >= 0 && compareTruncated(number, r.High) <= 0
}

// compareTruncated compares number with bound over their common length.
// Equal-length digit strings order the same lexically and numerically.
func compareTruncated(number, bound string) int {
	n := len(number)
	if len(bound) < n {
		n = len(bound)
	}
	for i := 0; i < n; i++ {
		switch {
		case number[i] < bound[i]:
			return -1
		case number[i] > bound[i]:
			return 1
		}
	}
	return 0
}

// Matching returns every range number falls within, in table order.
func (t Table) Matching(number string) []mod.BinRange {
	var result []mod.BinRange
	for _, r := range t {
		if Matches(r, number) {
			result = append(result, r)
		}
	}
	return result
}

// MostSpecific returns the matching range with the longest low bound. A
// table that has lost its catch-all still answers with CatchAll.
func (t Table) MostSpecific(number string) mod.BinRange {
	best := -1
	for i := range t {
		if !Matches(t[i], number) {
			continue
		}
		if best < 0 || len(t[i].Low) > len(t[best].Low) {
			best = i
		}
	}
	if best < 0 {
		return CatchAll()
	}
	return t[best]
}

// IsVariableLength reports whether the brand guessed from the first five
// digits of prefix has more than one possible card length.
func (t Table) IsVariableLength(prefix string) bool {
	if prefix == "" {
		return false
	}
	return IsVariableLengthBrand(t.MostSpecific(firstN(prefix, data.PrefixLengthForBrandGuess)).Brand)
}

// IsInvalidPrefix reports whether no known brand starts with the first
// five digits of prefix, in which case a metadata lookup is pointless.
func (t Table) IsInvalidPrefix(prefix string) bool {
	return t.MostSpecific(firstN(prefix, data.PrefixLengthForBrandGuess)).Brand == mod.BrandUnknown
}

// PossibleBrands lists the distinct known brands among the ranges number
// matches, in order of first appearance.
func (t Table) PossibleBrands(number string) []mod.Brand {
	seen := make(map[mod.Brand]bool)
	var brands []mod.Brand
	for _, r := range t {
		if r.Brand == mod.BrandUnknown || seen[r.Brand] || !Matches(r, number) {
			continue
		}
		seen[r.Brand] = true
		brands = append(brands, r.Brand)
	}
	return brands
}

// Lengths returns the distinct card lengths known for brand, ascending.
func (t Table) Lengths(brand mod.Brand) []int {
	seen := make(map[int]bool)
	var lengths []int
	for _, r := range t {
		if r.Brand != brand || seen[r.PanLength] {
			continue
		}
		seen[r.PanLength] = true
		lengths = append(lengths, r.PanLength)
	}
	sort.Ints(lengths)
	return lengths
}

// MaxLength is the longest known card length for brand, or the unknown
// length when the table has no range for it.
func (t Table) MaxLength(brand mod.Brand) int {
	lengths := t.Lengths(brand)
	if len(lengths) == 0 {
		return data.UnknownPanLength
	}
	return lengths[len(lengths)-1]
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
