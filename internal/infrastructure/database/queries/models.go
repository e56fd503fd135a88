package queries

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type SocialLinks struct {
	Telegram   string `json:"telegram,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	SoundCloud string `json:"soundcloud,omitempty"`
	Spotify    string `json:"spotify,omitempty"`
}

type Event struct {
	ID          int64
	Title       string
	Description string
	Location    string
	BannerURL   string
	VideoURL    string
	StartTime   pgtype.Timestamptz
	CreatedAt   pgtype.Timestamptz
}

// LineupSlotRow is an event_lineup row joined with its DJ's profile. The
// profile columns are NULL when dj_id is NULL.
type LineupSlotRow struct {
	ID            int64
	EventID       int64
	Position      int32
	StartTime     pgtype.Timestamptz
	EndTime       pgtype.Timestamptz
	DjID          pgtype.Int8
	DjUsername    pgtype.Text
	DjDisplayName pgtype.Text
	DjAvatarURL   pgtype.Text
	DjSocialLinks SocialLinks
}

type Participant struct {
	ID        int64
	EventID   int64
	UserID    int64
	Status    string
	CreatedAt pgtype.Timestamptz
}

type Profile struct {
	ID          int64
	Username    string
	DisplayName string
	AvatarURL   string
	Bio         string
	SocialLinks SocialLinks
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}
