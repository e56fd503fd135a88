package output

import (
	"context"

	"niti/internal/domain/entities"
)

type ProfileRepository interface {
	// EnsureExists inserts the profile only if no profile with the same id
	// exists. Existing profiles are left untouched.
	EnsureExists(ctx context.Context, profile *entities.Profile) (created bool, err error)
	// Save inserts or fully overwrites the profile.
	Save(ctx context.Context, profile *entities.Profile) error
}
