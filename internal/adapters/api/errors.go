package api

import (
	"log/slog"
	"net/http"

	"niti/internal/domain"
)

// writeDomainError maps err to a status and a localized message. Errors
// without a domain code are logged and answered with fallbackKey as a 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error, fallbackKey string) {
	switch domain.Code(err) {
	case "event_not_found":
		writeError(w, h.t("error.event_not_found"), http.StatusNotFound)
	case "invalid_event_id", "invalid_action":
		writeError(w, h.t("error.bad_request"), http.StatusBadRequest)
	case "init_data_missing":
		writeError(w, h.t("error.unauthorized"), http.StatusUnauthorized)
	case "invalid_signature", "init_data_expired", "session_user_missing":
		writeError(w, h.t("error.invalid_init_data"), http.StatusUnauthorized)
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r),
		)
		writeError(w, h.t(fallbackKey), http.StatusInternalServerError)
	}
}
