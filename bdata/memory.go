package bdata

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"git.thinkinpower.net/cardmeta/binrange"
	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/file"
	"git.thinkinpower.net/cardmeta/metrics"
	"git.thinkinpower.net/cardmeta/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// memoryDatabase keeps the ranges of every data file in memory, one set per
// file, so a changed file can be reloaded on its own.
type memoryDatabase struct {
	mu      sync.RWMutex
	files   map[string][]mod.BinRange
	dataDir string
	watcher *Watcher
	now     func() time.Time
}

func NewMemoryDatabase() BinDatabase {
	return &memoryDatabase{files: make(map[string][]mod.BinRange), now: time.Now}
}

func (m *memoryDatabase) Init(ctx context.Context, cfg BinDataConfig) error {
	m.dataDir = cfg.DataDir
	if cfg.DataDir == "" {
		logger.Warn("memory database has no data directory, feedback will be rejected")
		return nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return errors.Wrapf(err, "create data directory %s", cfg.DataDir)
	}

	filepaths, err := file.SearchDir(cfg.DataDir, isBinDataFile)
	if err != nil {
		return errors.Wrapf(err, "memory database init failed, dataDir: %s", cfg.DataDir)
	}
	for _, path := range filepaths {
		m.load(path)
	}

	if cfg.Watch {
		if m.watcher, err = WatchDir(cfg.DataDir, m.refresh); err != nil {
			return err
		}
	}
	m.updateGauge()
	logger.Infof("memory database loaded %d files from %s", len(filepaths), cfg.DataDir)
	return nil
}

func (m *memoryDatabase) refresh(e file.FileEvent) {
	if !isBinDataFile(e.Filepath) {
		return
	}
	m.load(e.Filepath)
	m.updateGauge()
}

// load replaces the ranges of path with its current content. A file that is
// gone takes its ranges with it.
func (m *memoryDatabase) load(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ranges, err := read(path)
	switch {
	case err == nil:
		m.files[path] = ranges
	case os.IsNotExist(errors.Cause(err)):
		delete(m.files, path)
	default:
		logger.Errorf("read bin data error: %s, file: %s", err, path)
	}
}

func (m *memoryDatabase) ReadRanges(ctx context.Context, prefix string) ([]mod.BinRange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var result []mod.BinRange
	for _, ranges := range m.files {
		for _, r := range ranges {
			if !binrange.Matches(r, prefix) || seen[r.Key()] {
				continue
			}
			seen[r.Key()] = true
			result = append(result, r)
		}
	}
	sortRanges(result)
	return result, nil
}

// Save appends r to today's feedback file. A range that is already known is
// not written again.
func (m *memoryDatabase) Save(ctx context.Context, r mod.BinRange) error {
	if m.dataDir == "" {
		return ErrDataDirNotConfigured
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := r.Key()
	for _, ranges := range m.files {
		for _, existing := range ranges {
			if existing.Key() == key {
				return nil
			}
		}
	}

	path := filepath.Join(m.dataDir, m.now().Format(data.DatePatternCompact), binDataFileName)
	if err := write2File(path, r); err != nil {
		return errors.Wrap(err, "save bin range")
	}
	m.files[path] = append(m.files[path], r)
	metrics.BinDatabaseRanges.Set(float64(m.countLocked()))
	return nil
}

func (m *memoryDatabase) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.countLocked(), nil
}

func (m *memoryDatabase) countLocked() int {
	seen := make(map[string]bool)
	for _, ranges := range m.files {
		for _, r := range ranges {
			seen[r.Key()] = true
		}
	}
	return len(seen)
}

func (m *memoryDatabase) updateGauge() {
	n, _ := m.Count(context.Background())
	metrics.BinDatabaseRanges.Set(float64(n))
}

func (m *memoryDatabase) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
