// Package metadata keeps the table of known card number ranges and refines
// it with ranges fetched for six digit prefixes.
//
// Every prefix key is fetched at most once at a time; callers asking for a
// key that is already being fetched wait on the same result. A key that was
// fetched successfully is never fetched again for the life of the Cache:
// BIN assignments do not change while the process runs.
package metadata

import (
	"context"
	"runtime/debug"
	"sync"

	"git.thinkinpower.net/cardmeta/binrange"
	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/metrics"
	"git.thinkinpower.net/cardmeta/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// Callback receives the ranges matching the requested prefix once they are
// as precise as the cache can make them, or the error that stopped the
// fetch.
type Callback func(ranges []mod.BinRange, err error)

type Option func(*Cache)

// WithDispatcher sets how callbacks are run. The default runs them on the
// goroutine that produced the result.
func WithDispatcher(dispatch func(func())) Option {
	return func(c *Cache) {
		if dispatch != nil {
			c.dispatch = dispatch
		}
	}
}

// WithFetchAllPrefixes makes the cache fetch every valid prefix instead of
// only those of variable length brands.
func WithFetchAllPrefixes() Option {
	return func(c *Cache) {
		c.fetchAll = true
	}
}

// WithContext sets the context fetches run with. Fetches are never
// cancelled by the callers waiting on them.
func WithContext(ctx context.Context) Option {
	return func(c *Cache) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// pendingFetch is the shared result of one in-flight fetch.
type pendingFetch struct {
	done  chan struct{}
	table binrange.Table
	err   error
}

type Cache struct {
	fetcher  Fetcher
	ctx      context.Context
	dispatch func(func())
	fetchAll bool

	mu        sync.Mutex
	ranges    binrange.Table
	retrieved map[string]bool
	pending   map[string]*pendingFetch
}

func New(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:   fetcher,
		ctx:       context.Background(),
		dispatch:  func(f func()) { f() },
		ranges:    binrange.Bootstrap(),
		retrieved: make(map[string]bool),
		pending:   make(map[string]*pendingFetch),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current table. Ranges are only ever appended, so the
// snapshot stays consistent after the lock is released.
func (c *Cache) Snapshot() binrange.Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cache) snapshotLocked() binrange.Table {
	n := len(c.ranges)
	return c.ranges[:n:n]
}

// MostSpecific is the best answer for number available right now.
func (c *Cache) MostSpecific(number string) mod.BinRange {
	return c.Snapshot().MostSpecific(number)
}

func (c *Cache) Ranges(number string) []mod.BinRange {
	return c.Snapshot().Matching(number)
}

func (c *Cache) PossibleBrands(number string) []mod.Brand {
	return c.Snapshot().PossibleBrands(number)
}

// HasRanges reports whether the cache can answer for prefix without a fetch:
// the prefix belongs to no brand, its brand has a single fixed length, or
// its key has already been fetched.
func (c *Cache) HasRanges(prefix string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasRangesLocked(prefix)
}

func (c *Cache) hasRangesLocked(prefix string) bool {
	table := c.snapshotLocked()
	if table.IsInvalidPrefix(prefix) {
		return true
	}
	if !c.fetchAll && !table.IsVariableLength(prefix) {
		return true
	}
	key := prefixKey(prefix)
	return len(key) == data.PrefixLengthForMetadataRequest && c.retrieved[key]
}

// IsLoading reports whether a fetch for the key of prefix is in flight.
func (c *Cache) IsLoading(prefix string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[prefixKey(prefix)]
	return ok
}

// Retrieve calls callback with the ranges matching prefix. When the cache
// cannot answer precisely yet it fetches the prefix key first, joining a
// fetch already in flight for the same key. callback may be nil.
func (c *Cache) Retrieve(prefix string, callback Callback) {
	key := prefixKey(prefix)

	c.mu.Lock()
	if len(key) < data.PrefixLengthForMetadataRequest || !isDigits(key) || c.hasRangesLocked(prefix) {
		table := c.snapshotLocked()
		c.mu.Unlock()
		c.deliver(callback, table.Matching(prefix), nil)
		return
	}
	if p, ok := c.pending[key]; ok {
		c.mu.Unlock()
		metrics.MetadataCoalesced.Inc()
		go c.await(p, prefix, callback)
		return
	}
	p := &pendingFetch{done: make(chan struct{})}
	c.pending[key] = p
	c.mu.Unlock()

	go c.await(p, prefix, callback)
	go c.fetch(key, p)
}

// RetrieveContext is Retrieve for callers that can block. It stops waiting
// when ctx is done; the fetch itself carries on.
func (c *Cache) RetrieveContext(ctx context.Context, prefix string) ([]mod.BinRange, error) {
	type result struct {
		ranges []mod.BinRange
		err    error
	}
	ch := make(chan result, 1)
	c.Retrieve(prefix, func(ranges []mod.BinRange, err error) {
		ch <- result{ranges: ranges, err: err}
	})
	select {
	case res := <-ch:
		return res.ranges, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) await(p *pendingFetch, prefix string, callback Callback) {
	<-p.done
	if p.err != nil {
		c.deliver(callback, nil, p.err)
		return
	}
	c.deliver(callback, p.table.Matching(prefix), nil)
}

func (c *Cache) deliver(callback Callback, ranges []mod.BinRange, err error) {
	if callback == nil {
		return
	}
	c.dispatch(func() { callback(ranges, err) })
}

func (c *Cache) fetch(key string, p *pendingFetch) {
	fetched, err := c.safeFetch(key)

	var learned []mod.BinRange
	if err == nil {
		for _, r := range fetched {
			if verr := binrange.Validate(r); verr != nil {
				logger.WithField("prefix", key).Warnf("dropping fetched range: %s", verr)
				continue
			}
			// an unknown brand would mark its whole five digit family invalid
			if r.Brand == mod.BrandUnknown {
				logger.WithField("prefix", key).Warnf("dropping fetched range %s-%s without brand", r.Low, r.High)
				continue
			}
			r.NetworkSourced = true
			learned = append(learned, r)
		}
	}

	c.mu.Lock()
	if err == nil {
		c.ranges = append(c.ranges, learned...)
		c.retrieved[key] = true
	}
	p.table = c.snapshotLocked()
	p.err = err
	delete(c.pending, key)
	c.mu.Unlock()

	close(p.done)

	if err != nil {
		metrics.MetadataFetches.WithLabelValues(metrics.ResultFailure).Inc()
		logger.WithField("prefix", key).Warnf("card metadata fetch failed: %s", err)
		return
	}
	metrics.MetadataFetches.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.MetadataLearnedRanges.Add(float64(len(learned)))
	logger.WithFields(logger.Fields{"prefix": key, "ranges": len(learned)}).Debug("card metadata fetched")
}

func (c *Cache) safeFetch(key string) (ranges []mod.BinRange, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("card metadata fetcher panic: %v\n%s", r, debug.Stack())
			err = errors.Errorf("fetcher panic: %v", r)
		}
	}()
	return c.fetcher.FetchBINRanges(c.ctx, key)
}

func prefixKey(prefix string) string {
	if len(prefix) > data.PrefixLengthForMetadataRequest {
		return prefix[:data.PrefixLengthForMetadataRequest]
	}
	return prefix
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
