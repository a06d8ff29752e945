package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	assert.NoError(t, RegisterRequest{Username: "alice", Email: "a@x.com", Password: "p"}.Validate())
	assert.Error(t, RegisterRequest{Username: " ", Email: "a@x.com", Password: "p"}.Validate())
	assert.Error(t, RegisterRequest{Username: "alice", Password: "p"}.Validate())
	assert.Error(t, RegisterRequest{Username: "alice", Email: "a@x.com"}.Validate())
}

func TestRegisterRequestMobile(t *testing.T) {
	assert.Nil(t, RegisterRequest{}.Mobile())

	blank := "   "
	assert.Nil(t, RegisterRequest{MobileNumber: &blank}.Mobile())

	padded := " 9840012345 "
	got := RegisterRequest{MobileNumber: &padded}.Mobile()
	require.NotNil(t, got)
	assert.Equal(t, "9840012345", *got)
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, LoginRequest{Username: "alice", Password: "p"}.Validate())
	assert.EqualError(t, LoginRequest{Username: "alice"}.Validate(), "username and password are required")
	assert.Error(t, LoginRequest{Password: "p"}.Validate())
}
