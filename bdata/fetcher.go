package bdata

import (
	"context"

	"git.thinkinpower.net/cardmeta/mod"
)

// LocalFetcher answers card metadata requests straight from a BinDatabase,
// for services that hold the ranges themselves.
type LocalFetcher struct {
	db BinDatabase
}

func NewLocalFetcher(db BinDatabase) *LocalFetcher {
	return &LocalFetcher{db: db}
}

func (f *LocalFetcher) FetchBINRanges(ctx context.Context, prefix string) ([]mod.BinRange, error) {
	return f.db.ReadRanges(ctx, prefix)
}
