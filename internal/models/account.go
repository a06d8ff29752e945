package models

// Account is a registered user credential record.
type Account struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	MobileNumber *string `json:"mobileNumber,omitempty"`
}
