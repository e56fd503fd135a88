package entities

import (
	"strconv"
	"time"
)

type Profile struct {
	ID          int64
	Username    string
	DisplayName string
	AvatarURL   string
	Bio         string
	SocialLinks SocialLinks
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SocialLinks struct {
	Telegram   string `json:"telegram,omitempty" yaml:"telegram"`
	Instagram  string `json:"instagram,omitempty" yaml:"instagram"`
	SoundCloud string `json:"soundcloud,omitempty" yaml:"soundcloud"`
	Spotify    string `json:"spotify,omitempty" yaml:"spotify"`
}

// Name is DisplayName > Username.
func (p *Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

// ProfileFromSession builds the profile registered lazily on a user's first
// write action.
func ProfileFromSession(s *Session) *Profile {
	username := s.Username
	if username == "" {
		username = "user_" + strconv.FormatInt(s.UserID, 10)
	}
	return &Profile{
		ID:          s.UserID,
		Username:    username,
		DisplayName: s.FirstName,
		AvatarURL:   s.PhotoURL,
	}
}
