package database

import (
	"context"
	"errors"

	"github.com/Konsultn-Engineering/sqltag/query"
	"go.uber.org/zap"
)

// ErrNotConnected is returned when a database has been closed or was never
// given a pool.
var ErrNotConnected = errors.New("sqltag: database not connected")

// Database runs fragments against a Postgres server. Each fragment is rendered
// to $n placeholder text and its params are sent as bound arguments.
type Database interface {
	Query(ctx context.Context, e query.Expr) (Rows, error)
	QueryRow(ctx context.Context, e query.Expr) Row
	Exec(ctx context.Context, e query.Expr) (Result, error)
	PingContext(ctx context.Context) error
	Close() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Columns() ([]string, error)
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

type Result interface {
	RowsAffected() (int64, error)
}

type Option func(*options)

type options struct {
	logger   *zap.Logger
	renderer *query.Renderer
}

// WithLogger logs every statement at debug level and failures at error level.
// Bound values are never logged.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRenderer replaces the default renderer, e.g. to share a text cache.
func WithRenderer(r *query.Renderer) Option {
	return func(o *options) {
		if r != nil {
			o.renderer = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		renderer: query.NewRenderer(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) render(op string, e query.Expr) query.Query {
	q := o.renderer.Render(e)
	o.logger.Debug("executing statement",
		zap.String("op", op),
		zap.String("sql", q.Text),
		zap.Int("args", len(q.Values)),
	)
	return q
}

func (o *options) failed(op string, q query.Query, err error) error {
	if err != nil {
		o.logger.Error("statement failed",
			zap.String("op", op),
			zap.String("sql", q.Text),
			zap.Error(err),
		)
	}
	return err
}

// errRow is returned by QueryRow when no statement could be issued.
type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
