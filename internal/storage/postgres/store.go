package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/varadhi-be/internal/models"
	"github.com/hongminglow/varadhi-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// Options tune the connection pool.
type Options struct {
	MinConns        int32
	MaxConns        int32
	ConnectTimeout  time.Duration
	BootstrapSchema bool
}

// Store provides Postgres-backed listings and accounts.
type Store struct {
	pool *pgxpool.Pool
	gw   *Gateway
}

// NewStore creates the pool within opts.ConnectTimeout and verifies it with a ping.
func NewStore(ctx context.Context, databaseURL string, opts Options, log *zap.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}

	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool, gw: NewGateway(poolAdapter{pool: pool}, log)}
	if opts.BootstrapSchema {
		if err := s.bootstrap(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Stats reports pool occupancy for the health endpoint.
func (s *Store) Stats() map[string]int32 {
	st := s.pool.Stat()
	return map[string]int32{
		"total":    st.TotalConns(),
		"idle":     st.IdleConns(),
		"acquired": st.AcquiredConns(),
		"max":      st.MaxConns(),
	}
}

func (s *Store) bootstrap(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.gw.Exec(ctx, stmt, nil); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

// DistinctServices returns every non-null service value in ascending order.
func (s *Store) DistinctServices(ctx context.Context) ([]string, error) {
	var out []string
	err := s.gw.Query(ctx, selectDistinctServices, nil, func(rows pgx.Rows) error {
		var err error
		out, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	return out, err
}

// ListAll returns every listing.
func (s *Store) ListAll(ctx context.Context) ([]models.Listing, error) {
	return s.listings(ctx, selectAllListings, nil)
}

// ListByService returns listings whose service equals service exactly.
func (s *Store) ListByService(ctx context.Context, service string) ([]models.Listing, error) {
	return s.listings(ctx, selectListingsByService, []any{service})
}

// Search binds %term% against all six columns, compared upper-cased.
func (s *Store) Search(ctx context.Context, term string) ([]models.Listing, error) {
	return s.listings(ctx, searchListings, []any{"%" + term + "%"})
}

func (s *Store) listings(ctx context.Context, statement string, params []any) ([]models.Listing, error) {
	var out []models.Listing
	err := s.gw.Query(ctx, statement, params, func(rows pgx.Rows) error {
		var err error
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.Listing])
		return err
	})
	return out, err
}

// CountByUsernameOrEmail counts accounts matching either identifier.
func (s *Store) CountByUsernameOrEmail(ctx context.Context, username, email string) (int64, error) {
	var count int64
	err := s.gw.Query(ctx, countAccountsByUsernameOrEmail, []any{username, email}, func(rows pgx.Rows) error {
		var err error
		count, err = pgx.CollectExactlyOneRow(rows, pgx.RowTo[int64])
		return err
	})
	return count, err
}

// CreateAccount inserts a new account row; each insert commits on its own.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) error {
	params := []any{account.Username, account.Email, Secret(account.PasswordHash), account.MobileNumber}
	if _, err := s.gw.Exec(ctx, insertAccount, params); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storage.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByUsername fetches the id, username, and password hash for username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	var found []models.Account
	err := s.gw.Query(ctx, selectAccountByUsername, []any{username}, func(rows pgx.Rows) error {
		var err error
		found, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
			var a models.Account
			err := row.Scan(&a.ID, &a.Username, &a.PasswordHash)
			return a, err
		})
		return err
	})
	if err != nil {
		return models.Account{}, err
	}
	if len(found) == 0 {
		return models.Account{}, storage.ErrNotFound
	}
	return found[0], nil
}
