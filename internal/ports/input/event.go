package input

import (
	"context"

	"niti/internal/domain/entities"
)

type EventUseCase interface {
	ListFeed(ctx context.Context, session *entities.Session) ([]entities.FeedEvent, error)
}
