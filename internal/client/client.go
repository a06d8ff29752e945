// Package client is a typed HTTP client for the directory API. It applies the
// same navigation rules as the web frontend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hongminglow/varadhi-be/internal/models"
	"github.com/hongminglow/varadhi-be/internal/models/dto"
)

// AllServices is the pseudo-category meaning "no filter".
const AllServices = "All Services"

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to one backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client. A nil httpClient gets a 10s timeout client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Categories returns the distinct service categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/api/services/distinct", nil, &out)
	return out, err
}

// Listings returns the listings of category, or all of them for "" and AllServices.
func (c *Client) Listings(ctx context.Context, category string) ([]models.Listing, error) {
	path := "/api/services"
	if category != "" && category != AllServices {
		path = "/api/services/category/" + url.PathEscape(category)
	}
	var out []models.Listing
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Search calls the search endpoint as-is; an empty term is rejected by the server.
func (c *Client) Search(ctx context.Context, term string) ([]models.Listing, error) {
	var out []models.Listing
	err := c.do(ctx, http.MethodGet, "/api/services/search?query="+url.QueryEscape(term), nil, &out)
	return out, err
}

// Browse resolves a catalog view: category wins over term, and a blank
// term falls back to every listing.
func (c *Client) Browse(ctx context.Context, category, term string) ([]models.Listing, error) {
	if category == "" && strings.TrimSpace(term) != "" {
		return c.Search(ctx, term)
	}
	return c.Listings(ctx, category)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.MessageResponse, error) {
	var out dto.MessageResponse
	err := c.do(ctx, http.MethodPost, "/api/register", req, &out)
	return out, err
}

// Login verifies credentials. Nothing but the identifiers is returned.
func (c *Client) Login(ctx context.Context, username, password string) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", dto.LoginRequest{Username: username, Password: password}, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Message == "" {
			e.Message = "Server error."
		}
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
