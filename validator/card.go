package validator

import (
	"context"

	"git.thinkinpower.net/cardmeta/binrange"
	"git.thinkinpower.net/cardmeta/checksum"
	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/metadata"
	"git.thinkinpower.net/cardmeta/mod"
	logger "github.com/sirupsen/logrus"
)

// CardValidator validates card numbers as they are typed. The answer it
// gives right away comes from whatever ranges the cache holds; when the
// prefix needs a metadata fetch the state is computed again once the fetch
// is done.
type CardValidator struct {
	cache *metadata.Cache
}

func NewCardValidator(cache *metadata.Cache) *CardValidator {
	return &CardValidator{cache: cache}
}

// Sanitize strips everything but digits and cuts the number to the length
// of the most specific range it falls in.
func (v *CardValidator) Sanitize(input string) string {
	number := digitsOnly(input)
	limit := v.cache.MostSpecific(number).PanLength
	if limit <= 0 || limit > data.MaxPanLength {
		limit = data.MaxPanLength
	}
	if len(number) > limit {
		return number[:limit]
	}
	return number
}

// Validate returns the current state of input. If the number's prefix still
// needs refining, a fetch is started and onUpdate, when not nil, receives
// the recomputed state after it finishes, whether it succeeded or not.
func (v *CardValidator) Validate(input string, onUpdate func(State)) State {
	number := digitsOnly(input)
	state := numberState(v.cache.Snapshot(), number)

	if v.needsRefinement(number) {
		v.cache.Retrieve(number, func(_ []mod.BinRange, err error) {
			if err != nil {
				logger.WithField("pan", mod.MaskPAN(number)).Debugf("validating without card metadata: %s", err)
			}
			if onUpdate != nil {
				onUpdate(numberState(v.cache.Snapshot(), number))
			}
		})
	}
	return state
}

// ValidateContext waits, within ctx, for any refinement the number needs
// before validating it. A failed or abandoned refinement falls back to the
// ranges already known.
func (v *CardValidator) ValidateContext(ctx context.Context, input string) State {
	number := digitsOnly(input)
	if v.needsRefinement(number) {
		if _, err := v.cache.RetrieveContext(ctx, number); err != nil {
			logger.WithField("pan", mod.MaskPAN(number)).Debugf("validating without card metadata: %s", err)
		}
	}
	return numberState(v.cache.Snapshot(), number)
}

// Brand is the brand of the most specific range the number falls in.
func (v *CardValidator) Brand(input string) mod.Brand {
	return v.Range(input).Brand
}

func (v *CardValidator) PossibleBrands(input string) []mod.Brand {
	return v.cache.PossibleBrands(digitsOnly(input))
}

// Range is the most specific range the number falls in. A number without
// digits falls in the catch-all range only.
func (v *CardValidator) Range(input string) mod.BinRange {
	number := digitsOnly(input)
	if number == "" {
		return binrange.CatchAll()
	}
	return v.cache.MostSpecific(number)
}

func (v *CardValidator) needsRefinement(number string) bool {
	return len(number) >= data.PrefixLengthForMetadataRequest && !v.cache.HasRanges(number)
}

func numberState(table binrange.Table, number string) State {
	if number == "" {
		return Empty()
	}
	r := table.MostSpecific(number)
	if r.Brand == mod.BrandUnknown {
		return Invalid(ReasonInvalidBrand)
	}
	switch {
	case len(number) > r.PanLength:
		return Invalid(ReasonInvalidLength)
	case len(number) < r.PanLength:
		return Incomplete(ReasonIncompleteNumber)
	case checksum.Luhn(number):
		return Valid()
	default:
		return Invalid(ReasonInvalidLuhn)
	}
}
