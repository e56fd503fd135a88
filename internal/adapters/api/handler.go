package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"niti/internal/ports/input"
	"niti/internal/ports/output"
)

// InitDataHeader carries the raw Telegram Mini App init data.
const InitDataHeader = "X-Telegram-Init-Data"

// Handler serves the Mini App JSON API.
type Handler struct {
	events        input.EventUseCase
	subscriptions input.SubscriptionUseCase
	verifier      input.InitDataVerifier
	store         output.Pinger
	translator    output.Translator
	locale        string
	metrics       *Metrics
	mux           *http.ServeMux
}

func NewHandler(
	events input.EventUseCase,
	subscriptions input.SubscriptionUseCase,
	verifier input.InitDataVerifier,
	store output.Pinger,
	translator output.Translator,
	locale string,
	metrics *Metrics,
) http.Handler {
	h := &Handler{
		events:        events,
		subscriptions: subscriptions,
		verifier:      verifier,
		store:         store,
		translator:    translator,
		locale:        locale,
		metrics:       metrics,
		mux:           http.NewServeMux(),
	}

	h.handle("GET /healthz", h.Healthz)
	h.mux.Handle("GET /metrics", metrics.Handler())

	h.handle("GET /api/events", h.requireSession(h.ListEvents))
	h.handle("GET /api/subscriptions", h.requireSession(h.ListSubscriptions))
	h.handle("POST /api/subscriptions", h.requireSession(h.ChangeSubscription))

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// handle registers fn under pattern with request logging and metrics.
func (h *Handler) handle(pattern string, fn http.HandlerFunc) {
	h.mux.Handle(pattern, h.instrument(pattern, fn))
}

func (h *Handler) t(key string) string {
	return h.translator.T(h.locale, key, nil)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, errorResponse{Error: message})
}
