package queries

import (
	"context"
)

// insertProfileIfAbsent never touches an existing row: fields the user may
// have customised (name, bio, links) survive lazy registration.
const insertProfileIfAbsent = `
INSERT INTO profiles (id, username, display_name, avatar_url)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`

type InsertProfileIfAbsentParams struct {
	ID          int64
	Username    string
	DisplayName string
	AvatarURL   string
}

func (q *Queries) InsertProfileIfAbsent(ctx context.Context, arg InsertProfileIfAbsentParams) (int64, error) {
	tag, err := q.db.Exec(ctx, insertProfileIfAbsent, arg.ID, arg.Username, arg.DisplayName, arg.AvatarURL)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const upsertProfile = `
INSERT INTO profiles (id, username, display_name, avatar_url, bio, social_links)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    username = EXCLUDED.username,
    display_name = EXCLUDED.display_name,
    avatar_url = EXCLUDED.avatar_url,
    bio = EXCLUDED.bio,
    social_links = EXCLUDED.social_links,
    updated_at = now()
RETURNING created_at, updated_at`

type UpsertProfileParams struct {
	ID          int64
	Username    string
	DisplayName string
	AvatarURL   string
	Bio         string
	SocialLinks SocialLinks
}

func (q *Queries) UpsertProfile(ctx context.Context, arg UpsertProfileParams) (Profile, error) {
	p := Profile{
		ID:          arg.ID,
		Username:    arg.Username,
		DisplayName: arg.DisplayName,
		AvatarURL:   arg.AvatarURL,
		Bio:         arg.Bio,
		SocialLinks: arg.SocialLinks,
	}
	err := q.db.QueryRow(ctx, upsertProfile,
		arg.ID,
		arg.Username,
		arg.DisplayName,
		arg.AvatarURL,
		arg.Bio,
		arg.SocialLinks,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return p, err
}
