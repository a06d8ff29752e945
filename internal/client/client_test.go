package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hongminglow/varadhi-be/internal/config"
	"github.com/hongminglow/varadhi-be/internal/models"
	"github.com/hongminglow/varadhi-be/internal/models/dto"
	"github.com/hongminglow/varadhi-be/internal/server"
	"github.com/hongminglow/varadhi-be/internal/storage/memory"
)

var (
	foodBank = models.Listing{SocietyName: "Annapoorna Trust", OrganisationNeed: "Rice", Service: "Food Bank", State: "TN", District: "Madurai", Pincode: "625001"}
	clothing = models.Listing{SocietyName: "Seva", OrganisationNeed: "Blankets", Service: "Clothing", State: "KA", District: "Mysuru", Pincode: "570001"}
	slashed  = models.Listing{SocietyName: "Vidya", Service: "Education/Tutoring", State: "KL"}
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.Config{Port: "0", CORSOrigins: []string{"*"}}
	srv := httptest.NewServer(server.NewHandler(cfg, memory.NewStore(foodBank, clothing, slashed), zap.NewNop()))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func TestBrowse(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	all, err := c.Browse(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	all, err = c.Browse(ctx, AllServices, "ignored")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := c.Browse(ctx, "Clothing", "madurai")
	require.NoError(t, err)
	assert.Equal(t, []models.Listing{clothing}, got)

	got, err = c.Browse(ctx, "", "madurai")
	require.NoError(t, err)
	assert.Equal(t, []models.Listing{foodBank}, got)

	got, err = c.Browse(ctx, "Education/Tutoring", "")
	require.NoError(t, err)
	assert.Equal(t, []models.Listing{slashed}, got)

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clothing", "Education/Tutoring", "Food Bank"}, cats)
}

func TestSearchWithoutTermIsAPIError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Search(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestRegisterAndLogin(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	msg, err := c.Register(ctx, dto.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "user registered successfully", msg.Message)

	_, err = c.Register(ctx, dto.RegisterRequest{Username: "alice", Email: "b@x.com", Password: "p1"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	res, err := c.Login(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, dto.LoginResponse{Message: "login successful", Username: "alice", UserID: 1}, res)

	_, err = c.Login(ctx, "alice", "nope")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid username or password", apiErr.Message)
}

func TestAPIErrorFallsBackOnUnreadableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Categories(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Server error.", apiErr.Message)
}

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "Organisation Need", HumanizeKey("ORGANISATION_NEED"))
	assert.Equal(t, "Society Name", HumanizeKey("SOCIETY_NAME"))
	assert.Equal(t, "Pincode", HumanizeKey("PINCODE"))
}

func TestWriteCards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCards(&buf, nil))
	assert.Equal(t, "No services found.\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCards(&buf, []models.Listing{foodBank, slashed}))
	out := buf.String()
	assert.Contains(t, out, "# Annapoorna Trust\n")
	assert.Contains(t, out, "# Vidya\n")
	assert.Regexp(t, `Organisation Need:\s+Rice`, out)
	assert.Regexp(t, `Organisation Need:\s+N/A`, out)
	assert.Regexp(t, `Pincode:\s+625001`, out)
}
