package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createEvent = `
INSERT INTO events (title, description, location, banner_url, video_url, start_time)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

type CreateEventParams struct {
	Title       string
	Description string
	Location    string
	BannerURL   string
	VideoURL    string
	StartTime   pgtype.Timestamptz
}

type CreateEventRow struct {
	ID        int64
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (CreateEventRow, error) {
	var row CreateEventRow
	err := q.db.QueryRow(ctx, createEvent,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.BannerURL,
		arg.VideoURL,
		arg.StartTime,
	).Scan(&row.ID, &row.CreatedAt)
	return row, err
}

const createLineupSlot = `
INSERT INTO event_lineup (event_id, dj_id, position, start_time, end_time)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

type CreateLineupSlotParams struct {
	EventID   int64
	DjID      pgtype.Int8
	Position  int32
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
}

func (q *Queries) CreateLineupSlot(ctx context.Context, arg CreateLineupSlotParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createLineupSlot,
		arg.EventID,
		arg.DjID,
		arg.Position,
		arg.StartTime,
		arg.EndTime,
	).Scan(&id)
	return id, err
}

const listEvents = `
SELECT id, title, description, location, banner_url, video_url, start_time, created_at
FROM events
ORDER BY start_time ASC, id ASC`

func (q *Queries) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := q.db.Query(ctx, listEvents)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

const listEventsByIDs = `
SELECT id, title, description, location, banner_url, video_url, start_time, created_at
FROM events
WHERE id = ANY($1)
ORDER BY start_time ASC, id ASC`

func (q *Queries) ListEventsByIDs(ctx context.Context, ids []int64) ([]Event, error) {
	rows, err := q.db.Query(ctx, listEventsByIDs, ids)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]Event, error) {
	defer rows.Close()
	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.Location,
			&e.BannerURL,
			&e.VideoURL,
			&e.StartTime,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const listLineupByEventIDs = `
SELECT
    l.id,
    l.event_id,
    l.position,
    l.start_time,
    l.end_time,
    l.dj_id,
    p.username,
    p.display_name,
    p.avatar_url,
    COALESCE(p.social_links, '{}'::jsonb)
FROM event_lineup l
LEFT JOIN profiles p ON p.id = l.dj_id
WHERE l.event_id = ANY($1)
ORDER BY l.event_id, l.position, l.start_time`

func (q *Queries) ListLineupByEventIDs(ctx context.Context, eventIDs []int64) ([]LineupSlotRow, error) {
	rows, err := q.db.Query(ctx, listLineupByEventIDs, eventIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LineupSlotRow
	for rows.Next() {
		var l LineupSlotRow
		if err := rows.Scan(
			&l.ID,
			&l.EventID,
			&l.Position,
			&l.StartTime,
			&l.EndTime,
			&l.DjID,
			&l.DjUsername,
			&l.DjDisplayName,
			&l.DjAvatarURL,
			&l.DjSocialLinks,
		); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}
