package dto

import (
	"errors"
	"strings"
)

var (
	errRegisterFields = errors.New("username, email, and password are required")
	errLoginFields    = errors.New("username and password are required")
)

type RegisterRequest struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	MobileNumber *string `json:"mobileNumber"`
}

// Validate reports whether the required registration fields are present.
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errRegisterFields
	}
	return nil
}

// Mobile returns the trimmed mobile number, or nil when none was given.
func (r RegisterRequest) Mobile() *string {
	if r.MobileNumber == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.MobileNumber)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate reports whether both credentials are present.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return errLoginFields
	}
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	UserID   int64  `json:"userId"`
}
