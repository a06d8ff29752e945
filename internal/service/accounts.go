package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/varadhi-be/internal/models"
	"github.com/hongminglow/varadhi-be/internal/models/dto"
	"github.com/hongminglow/varadhi-be/internal/storage"
)

// PasswordCost is the bcrypt cost used for every stored hash.
const PasswordCost = 10

const invalidCredentials = "invalid username or password"

// dummyHash gives a missing user the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), PasswordCost)
	return hash
})

// Authenticated is the result of a successful login. No session is created.
type Authenticated struct {
	UserID   int64
	Username string
}

// Accounts implements registration and stateless login.
type Accounts struct {
	store storage.AccountStore
	log   *zap.Logger
	cost  int
}

// NewAccounts constructs the account service over store.
func NewAccounts(store storage.AccountStore, log *zap.Logger) *Accounts {
	if log == nil {
		log = zap.NewNop()
	}
	return &Accounts{store: store, log: log, cost: PasswordCost}
}

// Register creates an account unless the username or the email is already taken.
func (a *Accounts) Register(ctx context.Context, req dto.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return validation(err.Error())
	}
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return validation("password must be at most 72 bytes")
		}
		a.log.Error("hash password", zap.Error(err))
		return storeFailure("failed to register user", err)
	}

	count, err := a.store.CountByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return storeFailure("failed to register user", err)
	}
	if count > 0 {
		return conflict("username or email already exists, please choose another one")
	}

	account := models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		MobileNumber: req.Mobile(),
	}
	if err := a.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return conflict("username or email already exists, please choose another one")
		}
		return storeFailure("failed to register user", err)
	}

	a.log.Info("account registered", zap.String("username", username))
	return nil
}

// Login verifies the password against the stored hash.
func (a *Accounts) Login(ctx context.Context, req dto.LoginRequest) (Authenticated, error) {
	if err := req.Validate(); err != nil {
		return Authenticated{}, validation(err.Error())
	}
	username := strings.TrimSpace(req.Username)

	account, err := a.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(req.Password))
			a.log.Info("login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
			return Authenticated{}, unauthorized(invalidCredentials)
		}
		return Authenticated{}, storeFailure("failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			a.log.Warn("compare password hash", zap.String("username", username), zap.Error(err))
		}
		a.log.Info("login rejected", zap.String("username", username), zap.String("reason", "wrong password"))
		return Authenticated{}, unauthorized(invalidCredentials)
	}

	return Authenticated{UserID: account.ID, Username: account.Username}, nil
}
