// Package seed loads profiles and events from a YAML file into the stores.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"niti/internal/domain/entities"
	"niti/internal/ports/output"
)

// File is the top-level seed document.
type File struct {
	Profiles []Profile `yaml:"profiles"`
	Events   []Event   `yaml:"events"`
}

type Profile struct {
	ID          int64                `yaml:"id"`
	Username    string               `yaml:"username"`
	DisplayName string               `yaml:"display_name"`
	AvatarURL   string               `yaml:"avatar_url"`
	Bio         string               `yaml:"bio"`
	SocialLinks entities.SocialLinks `yaml:"social_links"`
}

type Event struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Location    string    `yaml:"location"`
	BannerURL   string    `yaml:"banner_url"`
	VideoURL    string    `yaml:"video_url"`
	StartTime   time.Time `yaml:"start_time"`
	Lineup      []Slot    `yaml:"lineup"`
}

// Slot is one lineup entry. DJID refers to a profile id and may be 0.
type Slot struct {
	DJID      int64     `yaml:"dj_id"`
	StartTime time.Time `yaml:"start_time"`
	EndTime   time.Time `yaml:"end_time"`
}

// LoadFile reads and validates a seed file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	known := make(map[int64]bool, len(f.Profiles))
	for i, p := range f.Profiles {
		if p.ID <= 0 {
			return fmt.Errorf("seed: profiles[%d]: id must be positive", i)
		}
		if strings.TrimSpace(p.Username) == "" {
			return fmt.Errorf("seed: profiles[%d]: username is required", i)
		}
		known[p.ID] = true
	}
	for i, e := range f.Events {
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("seed: events[%d]: title is required", i)
		}
		if e.StartTime.IsZero() {
			return fmt.Errorf("seed: events[%d]: start_time is required", i)
		}
		for j, s := range e.Lineup {
			if s.DJID != 0 && !known[s.DJID] {
				return fmt.Errorf("seed: events[%d].lineup[%d]: unknown dj_id %d", i, j, s.DJID)
			}
			if !s.EndTime.IsZero() && s.EndTime.Before(s.StartTime) {
				return fmt.Errorf("seed: events[%d].lineup[%d]: end_time before start_time", i, j)
			}
		}
	}
	return nil
}

// Options tunes Apply.
type Options struct {
	// OverwriteProfiles replaces existing profiles with the file's version.
	// By default a profile that already exists is left as it is.
	OverwriteProfiles bool
}

// Apply registers the profiles, then inserts every event with its lineup.
// Events already present with the same title and start time are skipped, so
// applying the same file twice changes nothing. Lineup positions follow file
// order.
func Apply(ctx context.Context, f *File, profiles output.ProfileRepository, events output.EventRepository, opts Options) error {
	var createdProfiles int
	for _, p := range f.Profiles {
		profile := &entities.Profile{
			ID:          p.ID,
			Username:    p.Username,
			DisplayName: p.DisplayName,
			AvatarURL:   p.AvatarURL,
			Bio:         p.Bio,
			SocialLinks: p.SocialLinks,
		}
		if opts.OverwriteProfiles {
			if err := profiles.Save(ctx, profile); err != nil {
				return fmt.Errorf("seed profile %d: %w", p.ID, err)
			}
			createdProfiles++
			continue
		}
		created, err := profiles.EnsureExists(ctx, profile)
		if err != nil {
			return fmt.Errorf("seed profile %d: %w", p.ID, err)
		}
		if created {
			createdProfiles++
		}
	}

	existing, err := events.ListWithLineup(ctx)
	if err != nil {
		return fmt.Errorf("seed: list events: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[eventKey(e.Title, e.StartTime)] = true
	}

	var createdEvents int
	for _, e := range f.Events {
		key := eventKey(e.Title, e.StartTime)
		if seen[key] {
			slog.Debug("seed event already present", "title", e.Title, "start_time", e.StartTime)
			continue
		}
		event := &entities.Event{
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			BannerURL:   e.BannerURL,
			VideoURL:    e.VideoURL,
			StartTime:   e.StartTime,
		}
		for i, s := range e.Lineup {
			slot := entities.LineupSlot{
				Position:  i + 1,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
			}
			if s.DJID != 0 {
				slot.DJ = &entities.Profile{ID: s.DJID}
			}
			event.Lineup = append(event.Lineup, slot)
		}
		if err := events.Create(ctx, event); err != nil {
			return fmt.Errorf("seed event %q: %w", e.Title, err)
		}
		seen[key] = true
		createdEvents++
		slog.Debug("seeded event", "id", event.ID, "title", event.Title, "lineup", len(event.Lineup))
	}

	slog.Info("seed applied",
		"profiles", createdProfiles,
		"events", createdEvents,
		"skipped_events", len(f.Events)-createdEvents,
	)
	return nil
}

// eventKey identifies a seeded event. Start times are compared at microsecond
// precision, the resolution of timestamptz.
func eventKey(title string, start time.Time) string {
	return title + "|" + strconv.FormatInt(start.UnixMicro(), 10)
}
