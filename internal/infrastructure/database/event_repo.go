package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"niti/internal/domain/entities"
	"niti/internal/infrastructure/database/queries"
	"niti/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	q *queries.Queries
}

func NewEventRepository(q *queries.Queries) *EventRepository {
	return &EventRepository{q: q}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	err := r.q.InTx(ctx, func(q *queries.Queries) error {
		row, err := q.CreateEvent(ctx, queries.CreateEventParams{
			Title:       event.Title,
			Description: event.Description,
			Location:    event.Location,
			BannerURL:   event.BannerURL,
			VideoURL:    event.VideoURL,
			StartTime:   timeToPgtypeTimestamptz(event.StartTime),
		})
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		event.ID = row.ID
		event.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)

		for i := range event.Lineup {
			slot := &event.Lineup[i]
			var djID pgtype.Int8
			if slot.DJ != nil {
				djID = pgtype.Int8{Int64: slot.DJ.ID, Valid: true}
			}
			id, err := q.CreateLineupSlot(ctx, queries.CreateLineupSlotParams{
				EventID:   event.ID,
				DjID:      djID,
				Position:  int32(slot.Position),
				StartTime: timeToPgtypeTimestamptz(slot.StartTime),
				EndTime:   timeToPgtypeTimestamptz(slot.EndTime),
			})
			if err != nil {
				return fmt.Errorf("insert lineup slot %d: %w", i, err)
			}
			slot.ID = id
			slot.EventID = event.ID
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) ListWithLineup(ctx context.Context) ([]entities.Event, error) {
	rows, err := r.q.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]entities.Event, len(rows))
	ids := make([]int64, len(rows))
	index := make(map[int64]int, len(rows))
	for i := range rows {
		out[i] = eventToDomain(rows[i])
		ids[i] = rows[i].ID
		index[rows[i].ID] = i
	}
	if len(ids) == 0 {
		return out, nil
	}

	slots, err := r.q.ListLineupByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list lineup: %w", err)
	}
	for _, s := range slots {
		i, ok := index[s.EventID]
		if !ok {
			continue
		}
		out[i].Lineup = append(out[i].Lineup, lineupSlotToDomain(s))
	}
	return out, nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []int64) ([]entities.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.ListEventsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get events by ids: %w", err)
	}
	out := make([]entities.Event, len(rows))
	for i := range rows {
		out[i] = eventToDomain(rows[i])
	}
	return out, nil
}
