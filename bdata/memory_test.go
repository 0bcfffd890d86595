package bdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.thinkinpower.net/cardmeta/mod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unionPay19 = mod.BinRange{
	Low: "6250940000000000000", High: "6250949999999999999", PanLength: 19,
	Brand: mod.BrandUnionPay, Funding: "debit", Country: "CN", BankName: "Bank of Example",
}

func newMemoryDatabase(t *testing.T, dir string, watch bool) BinDatabase {
	t.Helper()
	db := NewMemoryDatabase()
	require.NoError(t, db.Init(context.Background(), BinDataConfig{DataDir: dir, Watch: watch}))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMemoryDatabaseReadRanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sample.bd"), sampleBinData)
	// the same range in a second file is reported once
	writeFile(t, filepath.Join(dir, "20240101", "feedback.bd"),
		"iin_low,iin_high,pan_length,brand,funding,country,bank_name\n"+
			"6250940000000000000,6250949999999999999,19,UNIONPAY,debit,CN,Bank of Example\n")
	writeFile(t, filepath.Join(dir, "ignored.csv"), "625094,625094,16,UNIONPAY,,,\n")

	db := newMemoryDatabase(t, dir, false)
	ctx := context.Background()

	ranges, err := db.ReadRanges(ctx, "625094")
	require.NoError(t, err)
	assert.Equal(t, []mod.BinRange{unionPay19}, ranges)

	ranges, err = db.ReadRanges(ctx, "424242")
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, "GB", ranges[0].Country)

	ranges, err = db.ReadRanges(ctx, "111111")
	require.NoError(t, err)
	assert.Empty(t, ranges)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMemoryDatabaseSave(t *testing.T) {
	dir := t.TempDir()
	db := newMemoryDatabase(t, dir, false)
	db.(*memoryDatabase).now = func() time.Time { return time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	require.NoError(t, db.Save(ctx, unionPay19))
	require.NoError(t, db.Save(ctx, unionPay19))

	ranges, err := db.ReadRanges(ctx, "625094")
	require.NoError(t, err)
	assert.Equal(t, []mod.BinRange{unionPay19}, ranges)

	stored, err := read(filepath.Join(dir, "20240305", binDataFileName))
	require.NoError(t, err)
	assert.Equal(t, []mod.BinRange{unionPay19}, stored, "duplicates are not written twice")

	// a fresh database sees the saved range
	reloaded := newMemoryDatabase(t, dir, false)
	ranges, err = reloaded.ReadRanges(ctx, "625094")
	require.NoError(t, err)
	assert.Equal(t, []mod.BinRange{unionPay19}, ranges)
}

func TestMemoryDatabaseWithoutDataDir(t *testing.T) {
	db := newMemoryDatabase(t, "", false)
	err := db.Save(context.Background(), unionPay19)
	assert.ErrorIs(t, err, ErrDataDirNotConfigured)

	ranges, err := db.ReadRanges(context.Background(), "625094")
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestMemoryDatabaseCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "bindata")
	newMemoryDatabase(t, dir, false)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryDatabaseReloadsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	db := newMemoryDatabase(t, dir, true)
	ctx := context.Background()

	hasRanges := func(prefix string, n int) func() bool {
		return func() bool {
			ranges, err := db.ReadRanges(ctx, prefix)
			return err == nil && len(ranges) == n
		}
	}

	writeFile(t, filepath.Join(dir, "added.bd"), sampleBinData)
	assert.Eventually(t, hasRanges("625094", 1), 5*time.Second, 20*time.Millisecond)

	// files written into a new directory are picked up as well
	writeFile(t, filepath.Join(dir, "20240101", "more.bd"),
		"iin_low,iin_high,pan_length,brand,funding,country,bank_name\n"+
			"3528000000000000,3528999999999999,16,JCB,,JP,\n")
	assert.Eventually(t, hasRanges("352812", 1), 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(dir, "added.bd")))
	assert.Eventually(t, hasRanges("625094", 0), 5*time.Second, 20*time.Millisecond)
}
