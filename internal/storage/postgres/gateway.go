package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var errConnClosed = errors.New("connection was closed before release")

// Conn is a single pooled connection held for the duration of one statement.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Release() error
}

// Pool hands out connections to the gateway.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Secret wraps a bound parameter that must never appear in logs or errors.
type Secret string

func (Secret) String() string { return "[redacted]" }

// Value lets drivers bind the underlying string.
func (s Secret) Value() (driver.Value, error) { return string(s), nil }

// QueryError describes a statement that failed at the store level.
type QueryError struct {
	Statement string
	Params    []any
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q %v: %v", compact(e.Statement), FormatParams(e.Params), e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Gateway executes exactly one statement per call on its own pooled connection.
type Gateway struct {
	pool Pool
	log  *zap.Logger
}

// NewGateway creates a gateway over the given pool.
func NewGateway(pool Pool, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{pool: pool, log: log}
}

// Query runs a row-returning statement and hands the rows to scan while the
// connection is still held.
func (g *Gateway) Query(ctx context.Context, statement string, params []any, scan func(pgx.Rows) error) error {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return g.fail(statement, params, fmt.Errorf("acquire connection: %w", err))
	}
	defer g.release(conn)

	g.log.Debug("executing statement", zap.String("sql", compact(statement)))
	rows, err := conn.Query(ctx, statement, params...)
	if err != nil {
		return g.fail(statement, params, err)
	}
	defer rows.Close()

	if err := scan(rows); err != nil {
		return g.fail(statement, params, err)
	}
	if err := rows.Err(); err != nil {
		return g.fail(statement, params, err)
	}
	return nil
}

// Exec runs a statement that returns no rows and reports the affected count.
func (g *Gateway) Exec(ctx context.Context, statement string, params []any) (int64, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return 0, g.fail(statement, params, fmt.Errorf("acquire connection: %w", err))
	}
	defer g.release(conn)

	g.log.Debug("executing statement", zap.String("sql", compact(statement)))
	tag, err := conn.Exec(ctx, statement, params...)
	if err != nil {
		return 0, g.fail(statement, params, err)
	}
	g.log.Debug("statement done", zap.Int64("rows_affected", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

func (g *Gateway) release(conn Conn) {
	if err := conn.Release(); err != nil {
		g.log.Error("release connection", zap.Error(err))
	}
}

func (g *Gateway) fail(statement string, params []any, err error) error {
	g.log.Error("statement failed",
		zap.String("sql", compact(statement)),
		zap.Strings("params", FormatParams(params)),
		zap.Error(err),
	)
	return &QueryError{Statement: statement, Params: params, Err: err}
}

// FormatParams renders bound parameters for diagnostics, honouring Secret.
func FormatParams(params []any) []string {
	out := make([]string, len(params))
	for i, p := range params {
		switch v := p.(type) {
		case Secret:
			out[i] = v.String()
		case *string:
			if v == nil {
				out[i] = "<nil>"
			} else {
				out[i] = *v
			}
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

func compact(statement string) string {
	return strings.Join(strings.Fields(statement), " ")
}

// poolAdapter exposes a pgxpool.Pool as a gateway Pool.
type poolAdapter struct {
	pool *pgxpool.Pool
}

func (p poolAdapter) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return pooledConn{conn: conn}, nil
}

type pooledConn struct {
	conn *pgxpool.Conn
}

func (c pooledConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

func (c pooledConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

// Release returns the connection to the pool. A connection that was closed
// underneath us is destroyed by the pool instead, which is reported.
func (c pooledConn) Release() error {
	closed := c.conn.Conn().IsClosed()
	c.conn.Release()
	if closed {
		return errConnClosed
	}
	return nil
}
