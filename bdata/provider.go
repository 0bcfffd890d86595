// Package bdata stores the precise BIN ranges served to card metadata
// clients, either in memory from .bd data files or in PostgreSQL.
package bdata

import (
	"context"
	"sort"
	"strings"

	"git.thinkinpower.net/cardmeta/binrange"
	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/mod"
	"git.thinkinpower.net/cardmeta/validator"
	"github.com/pkg/errors"
)

const (
	BinDatabaseModeMemory   = "memory"
	BinDatabaseModePostgres = "postgres"
)

var (
	ErrInvalidBinRange      = errors.New("invalid bin range")
	ErrDataDirNotConfigured = errors.New("data directory not configured")
	ErrUnknownDatabaseMode  = errors.New("unknown bin database mode")
)

type BinDataConfig struct {
	DataDir string
	DSN     string
	// Watch reloads data files when they change on disk.
	Watch bool
}

type BinDatabase interface {
	Init(ctx context.Context, cfg BinDataConfig) error
	// ReadRanges returns every stored range the prefix falls in, ordered by
	// their bounds.
	ReadRanges(ctx context.Context, prefix string) ([]mod.BinRange, error)
	Save(ctx context.Context, r mod.BinRange) error
	Count(ctx context.Context) (int, error)
	Close() error
}

func NewBinDatabase(mode string) (BinDatabase, error) {
	switch mode {
	case BinDatabaseModeMemory, "":
		return NewMemoryDatabase(), nil
	case BinDatabaseModePostgres:
		return NewPostgresDatabase(), nil
	default:
		return nil, errors.Wrap(ErrUnknownDatabaseMode, mode)
	}
}

// VerifyBinRange checks a range submitted for prefix before it is stored.
func VerifyBinRange(prefix string, r mod.BinRange) error {
	if len(prefix) != data.PrefixLengthForMetadataRequest || !isDigits(prefix) {
		return errors.Wrapf(ErrInvalidBinRange, "prefix %q must be %d digits", prefix, data.PrefixLengthForMetadataRequest)
	}
	if err := verifyRange(r); err != nil {
		return err
	}
	if !strings.HasPrefix(r.Low, prefix) {
		return errors.Wrapf(ErrInvalidBinRange, "low bound %s does not start with %s", r.Low, prefix)
	}
	return nil
}

func verifyRange(r mod.BinRange) error {
	if err := binrange.Validate(r); err != nil {
		return errors.Wrap(ErrInvalidBinRange, err.Error())
	}
	if r.Brand == mod.BrandUnknown {
		return errors.Wrap(ErrInvalidBinRange, "brand is required")
	}
	if r.Country != "" && !validator.IsCountryCode(strings.ToUpper(r.Country)) {
		return errors.Wrapf(ErrInvalidBinRange, "country %q is not an ISO 3166-1 alpha-2 code", r.Country)
	}
	return nil
}

// CreateBinRange stores feedback for prefix unless an identical range is
// already known.
func CreateBinRange(ctx context.Context, db BinDatabase, prefix string, r mod.BinRange) error {
	r.Country = strings.ToUpper(r.Country)
	r.Funding = strings.ToLower(r.Funding)
	r.NetworkSourced = false
	if err := VerifyBinRange(prefix, r); err != nil {
		return err
	}
	return db.Save(ctx, r)
}

type RangeInfo struct {
	mod.BinRange
	CountryName string `json:"country_name,omitempty"`
}

// Query returns the ranges known for prefix with the country names spelled
// in lang.
func Query(ctx context.Context, db BinDatabase, prefix, lang string) ([]RangeInfo, error) {
	ranges, err := db.ReadRanges(ctx, prefix)
	if err != nil {
		return nil, err
	}
	result := make([]RangeInfo, 0, len(ranges))
	for _, r := range ranges {
		result = append(result, RangeInfo{BinRange: r, CountryName: CountryName(r.Country, lang)})
	}
	return result, nil
}

func sortRanges(ranges []mod.BinRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Low != ranges[j].Low {
			return ranges[i].Low < ranges[j].Low
		}
		return ranges[i].High < ranges[j].High
	})
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
