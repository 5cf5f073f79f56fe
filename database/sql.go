package database

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqltag/cache"
	"github.com/Konsultn-Engineering/sqltag/query"
	"go.uber.org/zap"
)

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	db    *sql.DB
	stmts *cache.StatementCache
	opts  options
}

// NewSqlDatabase creates a new SqlDatabase. When stmts is non-nil every
// statement is prepared once per rendered text and reused.
func NewSqlDatabase(db *sql.DB, stmts *cache.StatementCache, opts ...Option) *SqlDatabase {
	return &SqlDatabase{db: db, stmts: stmts, opts: newOptions(opts)}
}

// DB returns the underlying handle.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

// Query executes a query that returns rows.
func (s *SqlDatabase) Query(ctx context.Context, e query.Expr) (Rows, error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	q := s.opts.render("query", e)

	rows, err := s.queryRows(ctx, q)
	if err != nil {
		return nil, s.opts.failed("query", q, err)
	}
	return &SqlRows{rows: rows}, nil
}

// QueryRow executes a query expected to return at most one row.
func (s *SqlDatabase) QueryRow(ctx context.Context, e query.Expr) Row {
	if s.db == nil {
		return errRow{err: ErrNotConnected}
	}
	q := s.opts.render("query_row", e)

	stmt, err := s.prepared(ctx, q)
	if err != nil {
		return errRow{err: s.opts.failed("query_row", q, err)}
	}
	if stmt != nil {
		row := stmt.QueryRowContext(ctx, q.Values...)
		if !isStmtClosed(row.Err()) {
			return row
		}
	}
	return s.db.QueryRowContext(ctx, q.Text, q.Values...)
}

// Exec executes a statement without returning rows.
func (s *SqlDatabase) Exec(ctx context.Context, e query.Expr) (Result, error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	q := s.opts.render("exec", e)

	res, err := s.execStmt(ctx, q)
	if err != nil {
		return nil, s.opts.failed("exec", q, err)
	}
	return res, nil // database/sql.Result implements Result
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	if s.db == nil {
		return ErrNotConnected
	}
	return s.db.PingContext(ctx)
}

// Close closes cached statements and then the database.
func (s *SqlDatabase) Close() error {
	if s.db == nil {
		return nil
	}
	if s.stmts != nil {
		if err := s.stmts.Close(); err != nil {
			s.opts.logger.Warn("closing statement cache", zap.Error(err))
		}
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SqlDatabase) queryRows(ctx context.Context, q query.Query) (*sql.Rows, error) {
	stmt, err := s.prepared(ctx, q)
	if err != nil {
		return nil, err
	}
	if stmt != nil {
		rows, err := stmt.QueryContext(ctx, q.Values...)
		if !isStmtClosed(err) {
			return rows, err
		}
	}
	return s.db.QueryContext(ctx, q.Text, q.Values...)
}

func (s *SqlDatabase) execStmt(ctx context.Context, q query.Query) (sql.Result, error) {
	stmt, err := s.prepared(ctx, q)
	if err != nil {
		return nil, err
	}
	if stmt != nil {
		res, err := stmt.ExecContext(ctx, q.Values...)
		if !isStmtClosed(err) {
			return res, err
		}
	}
	return s.db.ExecContext(ctx, q.Text, q.Values...)
}

// isStmtClosed reports the error database/sql returns for a statement closed
// between lookup and use, which happens when the cache evicts it. database/sql
// does not export this error.
func isStmtClosed(err error) bool {
	return err != nil && err.Error() == "sql: statement is closed"
}

func (s *SqlDatabase) prepared(ctx context.Context, q query.Query) (*sql.Stmt, error) {
	if s.stmts == nil {
		return nil, nil
	}
	return s.stmts.GetOrPrepare(ctx, s.db, q.Text)
}

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows *sql.Rows
}

// Next prepares the next result row for reading.
func (s *SqlRows) Next() bool { return s.rows.Next() }

// Scan copies the columns from the current row into the provided destinations.
func (s *SqlRows) Scan(dest ...any) error { return s.rows.Scan(dest...) }

// Close closes the rows iterator.
func (s *SqlRows) Close() error { return s.rows.Close() }

// Columns returns the column names.
func (s *SqlRows) Columns() ([]string, error) { return s.rows.Columns() }

func (s *SqlRows) Err() error { return s.rows.Err() }

// Assert that SqlDatabase implements the Database interface.
var _ Database = (*SqlDatabase)(nil)
