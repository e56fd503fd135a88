package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"niti/internal/domain"
	"niti/internal/domain/entities"
	"niti/internal/infrastructure/database/queries"
	"niti/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

// ParticipantRepository implements output.ParticipantRepository on pgx.
type ParticipantRepository struct {
	q *queries.Queries
}

// NewParticipantRepository creates a ParticipantRepository.
func NewParticipantRepository(q *queries.Queries) *ParticipantRepository {
	return &ParticipantRepository{q: q}
}

// Create relies on the (event_id, user_id) unique constraint: of several
// concurrent inserts exactly one creates the row, the others report
// created=false.
func (r *ParticipantRepository) Create(ctx context.Context, participant *entities.Participant) (bool, error) {
	row, err := r.q.InsertParticipant(ctx, queries.InsertParticipantParams{
		EventID: participant.EventID,
		UserID:  participant.UserID,
		Status:  participant.Status,
	})
	switch {
	case err == nil:
		participant.ID = row.ID
		participant.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
		return true, nil
	case errors.Is(err, pgx.ErrNoRows), isUniqueViolation(err):
		return false, nil
	case isForeignKeyViolation(err, "event_participants_event_id_fkey"):
		return false, domain.ErrEventNotFound
	default:
		return false, fmt.Errorf("create participant: %w", err)
	}
}

func (r *ParticipantRepository) DeleteByEventIDAndUserID(ctx context.Context, eventID, userID int64) (int64, error) {
	n, err := r.q.DeleteParticipant(ctx, eventID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete participant: %w", err)
	}
	return n, nil
}

func (r *ParticipantRepository) CountByEventIDAndStatus(ctx context.Context, eventID int64, status string) (int64, error) {
	count, err := r.q.CountParticipantsByEventIDAndStatus(ctx, eventID, status)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}

func (r *ParticipantRepository) FindByStatus(ctx context.Context, status string) ([]entities.Participant, error) {
	rows, err := r.q.ListParticipantsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("get participants by status: %w", err)
	}
	return participantsToDomain(rows), nil
}

func (r *ParticipantRepository) FindByUserIDAndStatus(ctx context.Context, userID int64, status string) ([]entities.Participant, error) {
	rows, err := r.q.ListParticipantsByUserIDAndStatus(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("get participants by user id and status: %w", err)
	}
	return participantsToDomain(rows), nil
}

func participantsToDomain(rows []queries.Participant) []entities.Participant {
	out := make([]entities.Participant, len(rows))
	for i := range rows {
		out[i] = participantToDomain(rows[i])
	}
	return out
}
