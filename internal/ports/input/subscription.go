package input

import (
	"context"

	"niti/internal/domain/entities"
)

type SubscriptionUseCase interface {
	Subscribe(ctx context.Context, session *entities.Session, eventID int64) (entities.SubscriptionResult, error)
	Unsubscribe(ctx context.Context, session *entities.Session, eventID int64) (entities.SubscriptionResult, error)
	ListUserEvents(ctx context.Context, session *entities.Session, includePast bool) ([]entities.SubscribedEvent, error)
}
