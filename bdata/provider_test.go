package bdata

import (
	"context"
	"testing"

	"git.thinkinpower.net/cardmeta/metadata"
	"git.thinkinpower.net/cardmeta/mod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBinDatabase(t *testing.T) {
	db, err := NewBinDatabase(BinDatabaseModeMemory)
	require.NoError(t, err)
	assert.IsType(t, &memoryDatabase{}, db)

	db, err = NewBinDatabase(BinDatabaseModePostgres)
	require.NoError(t, err)
	assert.IsType(t, &postgresDatabase{}, db)

	_, err = NewBinDatabase("redis")
	assert.ErrorIs(t, err, ErrUnknownDatabaseMode)
}

func TestVerifyBinRange(t *testing.T) {
	valid := mod.BinRange{Low: "6250940000", High: "6250949999", PanLength: 19, Brand: mod.BrandUnionPay}

	tests := []struct {
		name   string
		prefix string
		mutate func(r *mod.BinRange)
		ok     bool
	}{
		{"valid", "625094", func(r *mod.BinRange) {}, true},
		{"short prefix", "62509", func(r *mod.BinRange) {}, false},
		{"prefix with letters", "62509a", func(r *mod.BinRange) {}, false},
		{"other prefix", "625095", func(r *mod.BinRange) {}, false},
		{"low above high", "625094", func(r *mod.BinRange) { r.High = "6250940000"; r.Low = "6250949999" }, false},
		{"short pan", "625094", func(r *mod.BinRange) { r.PanLength = 11 }, false},
		{"long pan", "625094", func(r *mod.BinRange) { r.PanLength = 20 }, false},
		{"unknown brand", "625094", func(r *mod.BinRange) { r.Brand = mod.BrandUnknown }, false},
		{"empty high", "625094", func(r *mod.BinRange) { r.High = "" }, false},
		{"country", "625094", func(r *mod.BinRange) { r.Country = "cn" }, true},
		{"three letter country", "625094", func(r *mod.BinRange) { r.Country = "USA" }, false},
		{"unassigned country", "625094", func(r *mod.BinRange) { r.Country = "ZZ" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := VerifyBinRange(tt.prefix, r)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidBinRange)
		})
	}
}

func TestCreateBinRangeAndQuery(t *testing.T) {
	db := newMemoryDatabase(t, t.TempDir(), false)
	ctx := context.Background()

	r := unionPay19
	r.Country = "cn"
	r.Funding = "DEBIT"
	require.NoError(t, CreateBinRange(ctx, db, "625094", r))

	err := CreateBinRange(ctx, db, "625095", r)
	assert.ErrorIs(t, err, ErrInvalidBinRange)

	infos, err := Query(ctx, db, "625094", "en")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, unionPay19, infos[0].BinRange)
	assert.Equal(t, "China", infos[0].CountryName)
}

func TestLocalFetcherFeedsMetadataCache(t *testing.T) {
	db := newMemoryDatabase(t, t.TempDir(), false)
	ctx := context.Background()
	require.NoError(t, db.Save(ctx, unionPay19))

	cache := metadata.New(NewLocalFetcher(db))
	ranges, err := cache.RetrieveContext(ctx, "6250941006528599008")
	require.NoError(t, err)
	require.NotEmpty(t, ranges)
	assert.Equal(t, 19, cache.MostSpecific("6250941006528599008").PanLength)
}
