package output

import (
	"context"

	"niti/internal/domain/entities"
)

type EventRepository interface {
	// Create stores the event together with its lineup slots.
	Create(ctx context.Context, event *entities.Event) error
	// ListWithLineup returns every event ordered by start time ascending,
	// each with its lineup and the lineup DJs' profiles.
	ListWithLineup(ctx context.Context) ([]entities.Event, error)
	// FindByIDs returns the events among ids, without lineup. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []int64) ([]entities.Event, error)
}
