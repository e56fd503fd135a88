package api

import (
	"net/http"

	"niti/internal/domain/entities"
)

type socialResponse struct {
	Instagram  string `json:"instagram,omitempty"`
	SoundCloud string `json:"soundcloud,omitempty"`
	Spotify    string `json:"spotify,omitempty"`
}

type djResponse struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Avatar string         `json:"avatar"`
	Time   string         `json:"time"`
	Social socialResponse `json:"social"`
}

type eventResponse struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Location         string       `json:"location"`
	ImageURL         string       `json:"imageUrl"`
	VideoURL         string       `json:"videoUrl,omitempty"`
	DJLineup         []djResponse `json:"djLineup"`
	ParticipantCount int64        `json:"participantCount"`
	IsSubscribed     bool         `json:"isSubscribed"`
	Date             string       `json:"date"`
	Time             string       `json:"time"`
}

func toEventResponse(e entities.FeedEvent) eventResponse {
	lineup := make([]djResponse, len(e.Lineup))
	for i, dj := range e.Lineup {
		lineup[i] = djResponse{
			ID:     dj.ID,
			Name:   dj.Name,
			Avatar: dj.Avatar,
			Time:   dj.Time,
			Social: socialResponse{
				Instagram:  dj.Social.Instagram,
				SoundCloud: dj.Social.SoundCloud,
				Spotify:    dj.Social.Spotify,
			},
		}
	}
	return eventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Location:         e.Location,
		ImageURL:         e.ImageURL,
		VideoURL:         e.VideoURL,
		DJLineup:         lineup,
		ParticipantCount: e.ParticipantCount,
		IsSubscribed:     e.IsSubscribed,
		Date:             e.Date,
		Time:             e.Time,
	}
}

// ListEvents returns the event feed for the session user.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	feed, err := h.events.ListFeed(r.Context(), session)
	if err != nil {
		h.writeDomainError(w, r, err, "error.load_events")
		return
	}
	out := make([]eventResponse, len(feed))
	for i, e := range feed {
		out[i] = toEventResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}
