package bdata

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"git.thinkinpower.net/cardmeta/metrics"
	"git.thinkinpower.net/cardmeta/mod"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var errDSNNotConfigured = errors.New("postgres dsn not configured")

// A bound matches a prefix when the two agree over their common length.
const selectRangesSQL = `
SELECT iin_low, iin_high, pan_length, brand, funding, country, bank_name
FROM bin_ranges
WHERE left(iin_low, length($1::text)) <= left($1::text, length(iin_low))
  AND left($1::text, length(iin_high)) <= left(iin_high, length($1::text))
ORDER BY iin_low, iin_high`

const insertRangeSQL = `
INSERT INTO bin_ranges (iin_low, iin_high, pan_length, brand, funding, country, bank_name)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT ON CONSTRAINT bin_ranges_bounds_key DO NOTHING`

type postgresDatabase struct {
	pool *pgxpool.Pool
}

func NewPostgresDatabase() BinDatabase {
	return &postgresDatabase{}
}

func (p *postgresDatabase) Init(ctx context.Context, cfg BinDataConfig) error {
	if cfg.DSN == "" {
		return errDSNNotConfigured
	}
	if err := applyMigrations(cfg.DSN); err != nil {
		return err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return errors.Wrap(err, "parse postgres dsn")
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return errors.Wrap(err, "create postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return errors.Wrap(err, "ping postgres")
	}
	p.pool = pool

	if n, err := p.Count(ctx); err == nil {
		metrics.BinDatabaseRanges.Set(float64(n))
		logger.Infof("postgres database holds %d ranges", n)
	}
	return nil
}

func applyMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return errors.Wrap(err, "open migration connection")
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return errors.Wrap(err, "create migration driver")
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "open embedded migrations")
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, "create migrator")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}
	logger.Info("database migrations applied")
	return nil
}

func (p *postgresDatabase) ReadRanges(ctx context.Context, prefix string) ([]mod.BinRange, error) {
	rows, err := p.pool.Query(ctx, selectRangesSQL, prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "query ranges for %s", prefix)
	}
	ranges, err := pgx.CollectRows(rows, scanRange)
	if err != nil {
		return nil, errors.Wrapf(err, "scan ranges for %s", prefix)
	}
	return ranges, nil
}

func scanRange(row pgx.CollectableRow) (mod.BinRange, error) {
	var (
		r         mod.BinRange
		panLength int16
		brand     string
	)
	if err := row.Scan(&r.Low, &r.High, &panLength, &brand, &r.Funding, &r.Country, &r.BankName); err != nil {
		return mod.BinRange{}, err
	}
	r.PanLength = int(panLength)
	r.Brand = mod.ParseBrand(brand)
	return r, nil
}

func (p *postgresDatabase) Save(ctx context.Context, r mod.BinRange) error {
	_, err := p.pool.Exec(ctx, insertRangeSQL,
		r.Low, r.High, int16(r.PanLength), r.Brand.String(), r.Funding, r.Country, r.BankName)
	if err != nil {
		return errors.Wrap(err, "save bin range")
	}
	if n, err := p.Count(ctx); err == nil {
		metrics.BinDatabaseRanges.Set(float64(n))
	}
	return nil
}

func (p *postgresDatabase) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM bin_ranges`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count bin ranges")
	}
	return n, nil
}

func (p *postgresDatabase) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
