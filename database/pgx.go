package database

import (
	"context"
	"errors"

	"github.com/Konsultn-Engineering/sqltag/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the subset of *pgxpool.Pool used by PgxDatabase.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// PgxDatabase implements Database for a pgx pool.
type PgxDatabase struct {
	pool Pool
	opts options
}

// NewPgxDatabase creates a new PgxDatabase.
func NewPgxDatabase(pool Pool, opts ...Option) *PgxDatabase {
	return &PgxDatabase{pool: pool, opts: newOptions(opts)}
}

// Query executes a query that returns rows.
func (p *PgxDatabase) Query(ctx context.Context, e query.Expr) (Rows, error) {
	if p.pool == nil {
		return nil, ErrNotConnected
	}
	q := p.opts.render("query", e)
	rows, err := p.pool.Query(ctx, q.Text, q.Values...)
	if err != nil {
		return nil, p.opts.failed("query", q, err)
	}
	return &PgxRows{rows: rows}, nil
}

// QueryRow executes a query expected to return at most one row. Errors are
// deferred until Scan.
func (p *PgxDatabase) QueryRow(ctx context.Context, e query.Expr) Row {
	if p.pool == nil {
		return errRow{err: ErrNotConnected}
	}
	q := p.opts.render("query_row", e)
	return &pgxRow{row: p.pool.QueryRow(ctx, q.Text, q.Values...), q: q, opts: &p.opts}
}

// Exec executes a statement without returning rows.
func (p *PgxDatabase) Exec(ctx context.Context, e query.Expr) (Result, error) {
	if p.pool == nil {
		return nil, ErrNotConnected
	}
	q := p.opts.render("exec", e)
	tag, err := p.pool.Exec(ctx, q.Text, q.Values...)
	if err != nil {
		return nil, p.opts.failed("exec", q, err)
	}
	return &PgxResult{cmdTag: tag}, nil
}

// PingContext verifies the connection to the database is alive.
func (p *PgxDatabase) PingContext(ctx context.Context) error {
	if p.pool == nil {
		return ErrNotConnected
	}
	return p.pool.Ping(ctx)
}

// Close closes the pool. Later calls return ErrNotConnected.
func (p *PgxDatabase) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// PgxRows implements Rows for pgx.Rows.
type PgxRows struct {
	rows              pgx.Rows
	fieldDescriptions []pgconn.FieldDescription
}

// Next prepares the next result row for reading.
func (p *PgxRows) Next() bool { return p.rows.Next() }

// Scan copies the columns from the current row into the provided destinations.
func (p *PgxRows) Scan(dest ...any) error { return p.rows.Scan(dest...) }

// Close closes the rows iterator.
func (p *PgxRows) Close() error { p.rows.Close(); return nil }

func (p *PgxRows) Err() error { return p.rows.Err() }

// Columns returns the column names.
func (p *PgxRows) Columns() ([]string, error) {
	if p.fieldDescriptions == nil {
		p.fieldDescriptions = p.rows.FieldDescriptions()
	}
	columns := make([]string, len(p.fieldDescriptions))
	for i, fd := range p.fieldDescriptions {
		columns[i] = fd.Name
	}
	return columns, nil
}

// Values returns the values for the current row.
func (p *PgxRows) Values() ([]any, error) {
	return p.rows.Values()
}

type pgxRow struct {
	row  pgx.Row
	q    query.Query
	opts *options
}

func (r *pgxRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return r.opts.failed("query_row", r.q, err)
	}
	return err
}

// PgxResult implements Result for pgx command tags.
type PgxResult struct {
	cmdTag pgconn.CommandTag
}

// RowsAffected returns the number of rows affected by the command.
func (r *PgxResult) RowsAffected() (int64, error) {
	return r.cmdTag.RowsAffected(), nil
}

// CommandTag returns the raw tag, e.g. "UPDATE 3".
func (r *PgxResult) CommandTag() string { return r.cmdTag.String() }

// Assert that PgxDatabase implements the Database interface.
var _ Database = (*PgxDatabase)(nil)
