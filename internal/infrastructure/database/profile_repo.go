package database

import (
	"context"
	"fmt"

	"niti/internal/domain/entities"
	"niti/internal/infrastructure/database/queries"
	"niti/internal/ports/output"
)

var _ output.ProfileRepository = (*ProfileRepository)(nil)

type ProfileRepository struct {
	q *queries.Queries
}

func NewProfileRepository(q *queries.Queries) *ProfileRepository {
	return &ProfileRepository{q: q}
}

func (r *ProfileRepository) EnsureExists(ctx context.Context, profile *entities.Profile) (bool, error) {
	n, err := r.q.InsertProfileIfAbsent(ctx, queries.InsertProfileIfAbsentParams{
		ID:          profile.ID,
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
	})
	if err != nil {
		return false, fmt.Errorf("ensure profile: %w", err)
	}
	return n == 1, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile *entities.Profile) error {
	row, err := r.q.UpsertProfile(ctx, queries.UpsertProfileParams{
		ID:          profile.ID,
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Bio:         profile.Bio,
		SocialLinks: queries.SocialLinks(profile.SocialLinks),
	})
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	profile.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	profile.UpdatedAt = pgtypeTimestamptzToTime(row.UpdatedAt)
	return nil
}
