package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/varadhi-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ListingStore is the read-only query surface over the directory table.
type ListingStore interface {
	DistinctServices(ctx context.Context) ([]string, error)
	ListAll(ctx context.Context) ([]models.Listing, error)
	ListByService(ctx context.Context, service string) ([]models.Listing, error)
	// Search matches term case-insensitively as a substring of any listing field.
	Search(ctx context.Context, term string) ([]models.Listing, error)
}

// AccountStore captures persistence operations needed for register and login.
type AccountStore interface {
	// CountByUsernameOrEmail counts accounts whose username or email matches.
	CountByUsernameOrEmail(ctx context.Context, username, email string) (int64, error)
	CreateAccount(ctx context.Context, account models.Account) error
	FindByUsername(ctx context.Context, username string) (models.Account, error)
}

// Store bundles both surfaces behind one handle with a lifecycle.
type Store interface {
	ListingStore
	AccountStore
	Close()
}
