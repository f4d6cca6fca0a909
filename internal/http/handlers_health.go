package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/nazmul162001/educonnect/internal/core"
)

const healthTimeout = 2 * time.Second

// HealthHandler pings every registered backing store.
type HealthHandler struct {
	Checks map[string]core.HealthChecker
	Logger *slog.Logger
}

// ServeHTTP answers 200 {"status":"ok"} or 503 naming the first failing store.
// GET /healthz.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.Checks[name].Ping(ctx); err != nil {
			logger := h.Logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.WarnContext(r.Context(), "health check failed", "check", name, "error", err)
			WriteError(w, ErrorParams{Code: http.StatusServiceUnavailable, Message: name + " unavailable"})
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
