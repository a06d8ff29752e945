package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hongminglow/varadhi-be/internal/http/respond"
)

// Liveness is the plain text body served at the root path.
const Liveness = "Varadhi Services Backend API is running!"

// PoolStats is implemented by stores that can report connection pool usage.
type PoolStats interface {
	Stats() map[string]int32
}

// HealthHandler returns uptime and basic status.
type HealthHandler struct {
	startedAt time.Time
	pool      PoolStats
}

// NewHealthHandler creates a health endpoint handler. pool may be nil.
func NewHealthHandler(startedAt time.Time, pool PoolStats) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, pool: pool}
}

// Register wires the liveness and health routes.
func (h *HealthHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
}

func (h *HealthHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond.Text(w, http.StatusOK, Liveness)
}

type healthBody struct {
	Status string           `json:"status"`
	Uptime string           `json:"uptime"`
	Pool   map[string]int32 `json:"pool,omitempty"`
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := healthBody{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Truncate(time.Second).String(),
	}
	if h.pool != nil {
		body.Pool = h.pool.Stats()
	}
	respond.JSON(w, http.StatusOK, body)
}
