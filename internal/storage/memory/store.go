package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/hongminglow/varadhi-be/internal/models"
	"github.com/hongminglow/varadhi-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps listings and accounts in process memory with the same query
// semantics as the Postgres store.
type Store struct {
	mu       sync.RWMutex
	listings []models.Listing
	accounts []models.Account
	nextID   int64
}

// NewStore returns a store pre-populated with listings.
func NewStore(listings ...models.Listing) *Store {
	s := &Store{nextID: 1}
	s.listings = append(s.listings, listings...)
	return s
}

type seedFile struct {
	Listings []models.Listing `yaml:"listings"`
}

// LoadSeed reads a YAML document with a top-level "listings" sequence.
func LoadSeed(path string) ([]models.Listing, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seed.Listings, nil
}

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) DistinctServices(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.listings))
	out := []string{}
	for _, l := range s.listings {
		if _, ok := seen[l.Service]; ok {
			continue
		}
		seen[l.Service] = struct{}{}
		out = append(out, l.Service)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) ListAll(ctx context.Context) ([]models.Listing, error) {
	return s.filter(ctx, func(models.Listing) bool { return true })
}

func (s *Store) ListByService(ctx context.Context, service string) ([]models.Listing, error) {
	return s.filter(ctx, func(l models.Listing) bool { return l.Service == service })
}

func (s *Store) Search(ctx context.Context, term string) ([]models.Listing, error) {
	needle := strings.ToUpper(term)
	return s.filter(ctx, func(l models.Listing) bool {
		for _, field := range l.Fields() {
			if strings.Contains(strings.ToUpper(field), needle) {
				return true
			}
		}
		return false
	})
}

func (s *Store) filter(ctx context.Context, keep func(models.Listing) bool) ([]models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Listing{}
	for _, l := range s.listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) CountByUsernameOrEmail(ctx context.Context, username, email string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, a := range s.accounts {
		if a.Username == username || a.Email == email {
			n++
		}
	}
	return n, nil
}

// CreateAccount assigns the next id; username and email are unique.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return storage.ErrAlreadyExists
		}
	}
	account.ID = s.nextID
	s.nextID++
	s.accounts = append(s.accounts, account)
	return nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return models.Account{}, storage.ErrNotFound
}
