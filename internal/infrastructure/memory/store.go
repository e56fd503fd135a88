// Package memory is a process-local implementation of the repository ports,
// used with STORAGE_DRIVER=memory for local development and by tests. It
// enforces the same invariants as the PostgreSQL schema: unique
// (event, user) participations and existing events for new participations.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"niti/internal/domain"
	"niti/internal/domain/entities"
	"niti/internal/ports/output"
)

type participationKey struct {
	eventID int64
	userID  int64
}

// Store holds all tables behind a single mutex.
type Store struct {
	mu sync.Mutex

	events       map[int64]entities.Event
	profiles     map[int64]entities.Profile
	participants map[participationKey]entities.Participant

	nextEventID       int64
	nextSlotID        int64
	nextParticipantID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		events:       make(map[int64]entities.Event),
		profiles:     make(map[int64]entities.Profile),
		participants: make(map[participationKey]entities.Participant),
		now:          time.Now,
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Events() *EventRepository { return &EventRepository{s: s} }

func (s *Store) Participants() *ParticipantRepository { return &ParticipantRepository{s: s} }

func (s *Store) Profiles() *ProfileRepository { return &ProfileRepository{s: s} }

var (
	_ output.EventRepository       = (*EventRepository)(nil)
	_ output.ParticipantRepository = (*ParticipantRepository)(nil)
	_ output.ProfileRepository     = (*ProfileRepository)(nil)
	_ output.Pinger                = (*Store)(nil)
)

type EventRepository struct{ s *Store }

func (r *EventRepository) Create(_ context.Context, event *entities.Event) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	event.ID = s.nextEventID
	event.CreatedAt = s.now()
	stored := *event
	stored.Lineup = make([]entities.LineupSlot, len(event.Lineup))
	for i := range event.Lineup {
		s.nextSlotID++
		event.Lineup[i].ID = s.nextSlotID
		event.Lineup[i].EventID = event.ID
		slot := event.Lineup[i]
		if slot.DJ != nil {
			// Only the reference is stored; the profile is resolved on read.
			slot.DJ = &entities.Profile{ID: slot.DJ.ID}
		}
		stored.Lineup[i] = slot
	}
	s.events[event.ID] = stored
	return nil
}

func (r *EventRepository) ListWithLineup(context.Context) ([]entities.Event, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Event, 0, len(s.events))
	for _, e := range s.events {
		e.Lineup = s.resolveLineup(e.Lineup)
		out = append(out, e)
	}
	sortByStartTime(out)
	return out, nil
}

func (r *EventRepository) FindByIDs(_ context.Context, ids []int64) ([]entities.Event, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Event, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		e, ok := s.events[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		e.Lineup = nil
		out = append(out, e)
	}
	sortByStartTime(out)
	return out, nil
}

func (s *Store) resolveLineup(slots []entities.LineupSlot) []entities.LineupSlot {
	if len(slots) == 0 {
		return nil
	}
	out := make([]entities.LineupSlot, len(slots))
	for i, slot := range slots {
		if slot.DJ != nil {
			if p, ok := s.profiles[slot.DJ.ID]; ok {
				slot.DJ = &p
			} else {
				slot.DJ = nil
			}
		}
		out[i] = slot
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func sortByStartTime(events []entities.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].StartTime.Before(events[j].StartTime)
		}
		return events[i].ID < events[j].ID
	})
}

type ParticipantRepository struct{ s *Store }

func (r *ParticipantRepository) Create(_ context.Context, participant *entities.Participant) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[participant.EventID]; !ok {
		return false, domain.ErrEventNotFound
	}
	key := participationKey{participant.EventID, participant.UserID}
	if _, ok := s.participants[key]; ok {
		return false, nil
	}
	s.nextParticipantID++
	participant.ID = s.nextParticipantID
	participant.CreatedAt = s.now()
	s.participants[key] = *participant
	return true, nil
}

func (r *ParticipantRepository) DeleteByEventIDAndUserID(_ context.Context, eventID, userID int64) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	key := participationKey{eventID, userID}
	if _, ok := s.participants[key]; !ok {
		return 0, nil
	}
	delete(s.participants, key)
	return 1, nil
}

func (r *ParticipantRepository) CountByEventIDAndStatus(_ context.Context, eventID int64, status string) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, p := range s.participants {
		if k.eventID == eventID && p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *ParticipantRepository) FindByStatus(_ context.Context, status string) ([]entities.Participant, error) {
	return r.filter(func(p entities.Participant) bool { return p.Status == status }), nil
}

func (r *ParticipantRepository) FindByUserIDAndStatus(_ context.Context, userID int64, status string) ([]entities.Participant, error) {
	return r.filter(func(p entities.Participant) bool { return p.UserID == userID && p.Status == status }), nil
}

func (r *ParticipantRepository) filter(keep func(entities.Participant) bool) []entities.Participant {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Participant
	for _, p := range s.participants {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type ProfileRepository struct{ s *Store }

func (r *ProfileRepository) EnsureExists(_ context.Context, profile *entities.Profile) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.ID]; ok {
		return false, nil
	}
	now := s.now()
	profile.CreatedAt, profile.UpdatedAt = now, now
	s.profiles[profile.ID] = *profile
	return true, nil
}

func (r *ProfileRepository) Save(_ context.Context, profile *entities.Profile) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	s.profiles[profile.ID] = *profile
	return nil
}

// Profile returns a copy of the stored profile.
func (r *ProfileRepository) Profile(id int64) (entities.Profile, bool) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	return p, ok
}
