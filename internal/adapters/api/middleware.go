package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// requireSession verifies the init data header and stores the resulting
// session in the request context.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(InitDataHeader))
		if raw == "" {
			writeError(w, h.t("error.unauthorized"), http.StatusUnauthorized)
			return
		}
		session, err := h.verifier.Verify(raw)
		if err != nil {
			slog.Debug("init data rejected", "error", err, "request_id", requestID(r))
			writeError(w, h.t("error.invalid_init_data"), http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(withSession(r.Context(), session)))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}

// instrument assigns a request id, logs the request and records metrics
// under the route pattern.
func (h *Handler) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		elapsed := time.Since(start)

		h.metrics.observeRequest(route, strconv.Itoa(rec.status), elapsed)
		slog.Info("request",
			"request_id", id,
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}
