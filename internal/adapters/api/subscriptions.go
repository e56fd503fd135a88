package api

import (
	"encoding/json"
	"net/http"

	"niti/internal/domain"
	"niti/internal/domain/entities"
)

const maxBodyBytes = 1 << 16

type subscriptionRequest struct {
	EventID int64  `json:"eventId"`
	Action  string `json:"action"`
}

type subscriptionResponse struct {
	Success          bool   `json:"success"`
	ParticipantCount int64  `json:"participantCount"`
	Message          string `json:"message"`
}

type subscribedEventResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	ImageURL  string `json:"imageUrl"`
	StartTime string `json:"startTime"`
}

// ChangeSubscription subscribes or unsubscribes the session user. A first
// subscribe answers 201; repeated subscribes and every unsubscribe answer 200.
func (h *Handler) ChangeSubscription(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		writeError(w, h.t("error.unauthorized"), http.StatusUnauthorized)
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, h.t("error.bad_request"), http.StatusBadRequest)
		return
	}
	if req.EventID <= 0 || !domain.ValidAction(req.Action) {
		writeError(w, h.t("error.bad_request"), http.StatusBadRequest)
		return
	}

	if req.Action == domain.ActionUnsubscribe {
		res, err := h.subscriptions.Unsubscribe(r.Context(), session, req.EventID)
		if err != nil {
			h.metrics.observeSubscription(req.Action, "error")
			h.writeDomainError(w, r, err, "error.unsubscribe")
			return
		}
		h.metrics.observeSubscription(req.Action, "removed")
		writeJSON(w, http.StatusOK, subscriptionResponse{
			Success:          true,
			ParticipantCount: res.ParticipantCount,
			Message:          h.t("subscription.removed"),
		})
		return
	}

	res, err := h.subscriptions.Subscribe(r.Context(), session, req.EventID)
	if err != nil {
		h.metrics.observeSubscription(req.Action, "error")
		h.writeDomainError(w, r, err, "error.subscribe")
		return
	}
	status, key, result := http.StatusOK, "subscription.exists", "exists"
	if res.Created {
		status, key, result = http.StatusCreated, "subscription.created", "created"
	}
	h.metrics.observeSubscription(req.Action, result)
	writeJSON(w, status, subscriptionResponse{
		Success:          true,
		ParticipantCount: res.ParticipantCount,
		Message:          h.t(key),
	})
}

// ListSubscriptions returns the events the session user is going to.
// includePast=true selects past events instead of upcoming ones.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		writeError(w, h.t("error.unauthorized"), http.StatusUnauthorized)
		return
	}

	// Anything other than "true" selects upcoming events.
	includePast := r.URL.Query().Get("includePast") == "true"

	events, err := h.subscriptions.ListUserEvents(r.Context(), session, includePast)
	if err != nil {
		h.writeDomainError(w, r, err, "error.internal")
		return
	}
	writeJSON(w, http.StatusOK, toSubscribedEventResponses(events))
}

func toSubscribedEventResponses(events []entities.SubscribedEvent) []subscribedEventResponse {
	out := make([]subscribedEventResponse, len(events))
	for i, e := range events {
		out[i] = subscribedEventResponse{
			ID:        e.ID,
			Title:     e.Title,
			Date:      e.Date,
			Location:  e.Location,
			ImageURL:  e.ImageURL,
			StartTime: e.StartTime,
		}
	}
	return out
}
