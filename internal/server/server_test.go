package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hongminglow/varadhi-be/internal/config"
	"github.com/hongminglow/varadhi-be/internal/middleware"
	"github.com/hongminglow/varadhi-be/internal/storage/memory"
)

func serve(method, target string) *httptest.ResponseRecorder {
	cfg := config.Config{Port: "3000", CORSOrigins: []string{"*"}}
	h := NewHandler(cfg, memory.NewStore(), zap.NewNop())
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Origin", "http://localhost:5500")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServesFrontend(t *testing.T) {
	rec := serve(http.MethodGet, "/web/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-view="landing"`)

	rec = serve(http.MethodGet, "/web/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodGet, "/web")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/web/", rec.Header().Get("Location"))
}

func TestChainAppliesCORSAndRequestID(t *testing.T) {
	rec := serve(http.MethodOptions, "/api/login")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = serve(http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Varadhi Services Backend API is running!", rec.Body.String())
}
