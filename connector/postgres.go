package connector

import (
	"context"
	"fmt"

	"github.com/Konsultn-Engineering/sqltag/cache"
	"github.com/Konsultn-Engineering/sqltag/database"
	"github.com/Konsultn-Engineering/sqltag/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// Connect opens a pgx pool for cfg and verifies it with a ping, retrying per
// cfg.Retry. A nil logger disables logging.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*database.PgxDatabase, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := newRenderer(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	var pool *pgxpool.Pool
	connect := func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}

	if cfg.Retry != nil {
		err = retryConnect(ctx, cfg.Retry, logger, connect)
	} else {
		err = connect(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logger.Info("connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return database.NewPgxDatabase(pool,
		database.WithLogger(logger),
		database.WithRenderer(renderer),
	), nil
}

// OpenSQL opens a database/sql handle backed by the pgx stdlib driver. The
// connection is verified with a ping.
func OpenSQL(ctx context.Context, cfg Config, logger *zap.Logger) (*database.SqlDatabase, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	connCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	renderer, err := newRenderer(cfg.Cache)
	if err != nil {
		return nil, err
	}
	var stmts *cache.StatementCache
	if cfg.Cache.StatementSize > 0 {
		if stmts, err = cache.NewStatementCache(cfg.Cache.StatementSize); err != nil {
			return nil, err
		}
	}

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(cfg.Pool.MaxOpen)
	db.SetMaxIdleConns(cfg.Pool.MaxIdle)
	db.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	db.SetConnMaxIdleTime(cfg.Pool.MaxIdleTime)

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if cfg.Retry != nil {
		err = retryConnect(ctx, cfg.Retry, logger, db.PingContext)
	} else {
		err = db.PingContext(ctx)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	return database.NewSqlDatabase(db, stmts,
		database.WithLogger(logger),
		database.WithRenderer(renderer),
	), nil
}

// poolConfig maps cfg onto pgxpool settings. MaxIdle has no pgxpool
// counterpart: MinConns is a floor the pool keeps open, not an idle cap, so it
// stays at its default and idle connections are bounded by MaxIdleTime.
func poolConfig(cfg Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime
	return poolCfg, nil
}

func newRenderer(cfg CacheConfig) (*query.Renderer, error) {
	if cfg.TextSize <= 0 {
		return query.NewRenderer(), nil
	}
	c, err := cache.NewTextCache(cfg.TextSize)
	if err != nil {
		return nil, err
	}
	return query.NewRenderer(query.WithTextCache(c)), nil
}
