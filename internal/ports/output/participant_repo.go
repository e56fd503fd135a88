package output

import (
	"context"

	"niti/internal/domain/entities"
)

type ParticipantRepository interface {
	// Create inserts the participation unless one already exists for the
	// (event, user) pair. created is false when the row was already there.
	// It returns domain.ErrEventNotFound when the event does not exist.
	Create(ctx context.Context, participant *entities.Participant) (created bool, err error)
	// DeleteByEventIDAndUserID removes the (event, user) participation and
	// reports how many rows went away.
	DeleteByEventIDAndUserID(ctx context.Context, eventID, userID int64) (int64, error)
	CountByEventIDAndStatus(ctx context.Context, eventID int64, status string) (int64, error)
	FindByStatus(ctx context.Context, status string) ([]entities.Participant, error)
	FindByUserIDAndStatus(ctx context.Context, userID int64, status string) ([]entities.Participant, error)
}
