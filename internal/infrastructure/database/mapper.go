package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"niti/internal/domain/entities"
	"niti/internal/infrastructure/database/queries"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToPgtypeTimestamptz maps the zero time to NULL.
func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func eventToDomain(e queries.Event) entities.Event {
	return entities.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		BannerURL:   e.BannerURL,
		VideoURL:    e.VideoURL,
		StartTime:   pgtypeTimestamptzToTime(e.StartTime),
		CreatedAt:   pgtypeTimestamptzToTime(e.CreatedAt),
	}
}

func lineupSlotToDomain(l queries.LineupSlotRow) entities.LineupSlot {
	slot := entities.LineupSlot{
		ID:        l.ID,
		EventID:   l.EventID,
		Position:  int(l.Position),
		StartTime: pgtypeTimestamptzToTime(l.StartTime),
		EndTime:   pgtypeTimestamptzToTime(l.EndTime),
	}
	if l.DjID.Valid {
		slot.DJ = &entities.Profile{
			ID:          l.DjID.Int64,
			Username:    l.DjUsername.String,
			DisplayName: l.DjDisplayName.String,
			AvatarURL:   l.DjAvatarURL.String,
			SocialLinks: entities.SocialLinks(l.DjSocialLinks),
		}
	}
	return slot
}

func participantToDomain(p queries.Participant) entities.Participant {
	return entities.Participant{
		ID:        p.ID,
		EventID:   p.EventID,
		UserID:    p.UserID,
		Status:    p.Status,
		CreatedAt: pgtypeTimestamptzToTime(p.CreatedAt),
	}
}
