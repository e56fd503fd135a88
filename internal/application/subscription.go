package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"niti/internal/domain"
	"niti/internal/domain/entities"
	"niti/internal/ports/input"
	"niti/internal/ports/output"
	"niti/pkg/display"
)

var _ input.SubscriptionUseCase = (*SubscriptionService)(nil)

type SubscriptionService struct {
	participantRepo output.ParticipantRepository
	eventRepo       output.EventRepository
	profileRepo     output.ProfileRepository
	formatter       *display.Formatter
	now             func() time.Time
}

func NewSubscriptionService(
	participantRepo output.ParticipantRepository,
	eventRepo output.EventRepository,
	profileRepo output.ProfileRepository,
	formatter *display.Formatter,
) *SubscriptionService {
	return &SubscriptionService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		profileRepo:     profileRepo,
		formatter:       formatter,
		now:             time.Now,
	}
}

// Subscribe marks the session user as going to the event. Subscribing twice
// is not an error: the second call reports Created=false and the unchanged
// count.
func (s *SubscriptionService) Subscribe(ctx context.Context, session *entities.Session, eventID int64) (entities.SubscriptionResult, error) {
	if err := s.prepare(ctx, session, eventID); err != nil {
		return entities.SubscriptionResult{}, err
	}
	created, err := s.participantRepo.Create(ctx, &entities.Participant{
		EventID: eventID,
		UserID:  session.UserID,
		Status:  domain.StatusGoing,
	})
	if err != nil {
		return entities.SubscriptionResult{}, err
	}
	count, err := s.participantRepo.CountByEventIDAndStatus(ctx, eventID, domain.StatusGoing)
	if err != nil {
		return entities.SubscriptionResult{}, err
	}
	return entities.SubscriptionResult{Created: created, ParticipantCount: count}, nil
}

// Unsubscribe removes the session user's participation. Removing a
// participation that does not exist succeeds.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, session *entities.Session, eventID int64) (entities.SubscriptionResult, error) {
	if err := s.prepare(ctx, session, eventID); err != nil {
		return entities.SubscriptionResult{}, err
	}
	if _, err := s.participantRepo.DeleteByEventIDAndUserID(ctx, eventID, session.UserID); err != nil {
		return entities.SubscriptionResult{}, err
	}
	count, err := s.participantRepo.CountByEventIDAndStatus(ctx, eventID, domain.StatusGoing)
	if err != nil {
		return entities.SubscriptionResult{}, err
	}
	return entities.SubscriptionResult{ParticipantCount: count}, nil
}

// prepare validates the input and registers the user's profile on first use.
func (s *SubscriptionService) prepare(ctx context.Context, session *entities.Session, eventID int64) error {
	if session == nil || session.UserID == 0 {
		return domain.ErrSessionUserMissing
	}
	if eventID <= 0 {
		return domain.ErrInvalidEventID
	}
	if _, err := s.profileRepo.EnsureExists(ctx, entities.ProfileFromSession(session)); err != nil {
		return fmt.Errorf("register profile: %w", err)
	}
	return nil
}

// ListUserEvents returns the events the session user is going to. With
// includePast only past events are returned, most recent first; otherwise
// upcoming ones, soonest first.
func (s *SubscriptionService) ListUserEvents(ctx context.Context, session *entities.Session, includePast bool) ([]entities.SubscribedEvent, error) {
	if session == nil || session.UserID == 0 {
		return nil, domain.ErrSessionUserMissing
	}
	participations, err := s.participantRepo.FindByUserIDAndStatus(ctx, session.UserID, domain.StatusGoing)
	if err != nil {
		return nil, err
	}
	if len(participations) == 0 {
		return []entities.SubscribedEvent{}, nil
	}
	ids := make([]int64, len(participations))
	for i, p := range participations {
		ids[i] = p.EventID
	}
	events, err := s.eventRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	selected := events[:0]
	for _, e := range events {
		if e.IsPast(now) == includePast {
			selected = append(selected, e)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if includePast {
			return selected[i].StartTime.After(selected[j].StartTime)
		}
		return selected[i].StartTime.Before(selected[j].StartTime)
	})

	out := make([]entities.SubscribedEvent, len(selected))
	for i, e := range selected {
		out[i] = entities.SubscribedEvent{
			ID:        e.ID,
			Title:     e.Title,
			Date:      s.formatter.Date(e.StartTime),
			Location:  e.Location,
			ImageURL:  e.BannerURL,
			StartTime: s.formatter.Time(e.StartTime),
		}
	}
	return out, nil
}
