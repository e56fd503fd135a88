package queries

import (
	"context"
)

// insertParticipant returns no row when the (event_id, user_id) pair exists.
const insertParticipant = `
INSERT INTO event_participants (event_id, user_id, status)
VALUES ($1, $2, $3)
ON CONFLICT (event_id, user_id) DO NOTHING
RETURNING id, created_at`

type InsertParticipantParams struct {
	EventID int64
	UserID  int64
	Status  string
}

func (q *Queries) InsertParticipant(ctx context.Context, arg InsertParticipantParams) (Participant, error) {
	p := Participant{EventID: arg.EventID, UserID: arg.UserID, Status: arg.Status}
	err := q.db.QueryRow(ctx, insertParticipant, arg.EventID, arg.UserID, arg.Status).Scan(&p.ID, &p.CreatedAt)
	return p, err
}

const deleteParticipant = `
DELETE FROM event_participants
WHERE event_id = $1 AND user_id = $2`

func (q *Queries) DeleteParticipant(ctx context.Context, eventID, userID int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteParticipant, eventID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countParticipantsByEventIDAndStatus = `
SELECT COUNT(*)
FROM event_participants
WHERE event_id = $1 AND status = $2`

func (q *Queries) CountParticipantsByEventIDAndStatus(ctx context.Context, eventID int64, status string) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countParticipantsByEventIDAndStatus, eventID, status).Scan(&count)
	return count, err
}

const listParticipantsByStatus = `
SELECT id, event_id, user_id, status, created_at
FROM event_participants
WHERE status = $1
ORDER BY event_id, created_at`

func (q *Queries) ListParticipantsByStatus(ctx context.Context, status string) ([]Participant, error) {
	return q.listParticipants(ctx, listParticipantsByStatus, status)
}

const listParticipantsByUserIDAndStatus = `
SELECT id, event_id, user_id, status, created_at
FROM event_participants
WHERE user_id = $1 AND status = $2
ORDER BY created_at DESC`

func (q *Queries) ListParticipantsByUserIDAndStatus(ctx context.Context, userID int64, status string) ([]Participant, error) {
	return q.listParticipants(ctx, listParticipantsByUserIDAndStatus, userID, status)
}

func (q *Queries) listParticipants(ctx context.Context, sql string, args ...any) ([]Participant, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
