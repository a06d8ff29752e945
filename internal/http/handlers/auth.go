package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/varadhi-be/internal/http/respond"
	"github.com/hongminglow/varadhi-be/internal/models/dto"
	"github.com/hongminglow/varadhi-be/internal/service"
)

const maxBodyBytes = 1 << 20

// Accounts is the registration and login surface the handler depends on.
type Accounts interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (service.Authenticated, error)
}

// AuthHandler owns the register/login endpoints. Login is stateless: nothing
// is issued to the client besides the account identifiers.
type AuthHandler struct {
	accounts Accounts
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(accounts Accounts) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/register", h.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/login", h.handleLogin).Methods(http.MethodPost)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload", "")
		return
	}
	if err := h.accounts.Register(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.MessageResponse{Message: "user registered successfully"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload", "")
		return
	}
	user, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Message:  "login successful",
		Username: user.Username,
		UserID:   user.UserID,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

// writeServiceError maps the service error kinds onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	msg := service.Message(err, "internal server error")
	switch {
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, http.StatusBadRequest, msg, "")
	case errors.Is(err, service.ErrConflict):
		respond.Error(w, http.StatusConflict, msg, "")
	case errors.Is(err, service.ErrUnauthorized):
		respond.Error(w, http.StatusUnauthorized, msg, "")
	default:
		respond.Error(w, http.StatusInternalServerError, msg, service.Cause(err))
	}
}
