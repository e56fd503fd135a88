package application

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"niti/internal/domain"
	"niti/internal/domain/entities"
	"niti/internal/ports/input"
	"niti/internal/ports/output"
	"niti/pkg/display"
)

var _ input.EventUseCase = (*EventService)(nil)

// EventService assembles the event feed.
type EventService struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	formatter       *display.Formatter
}

func NewEventService(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	formatter *display.Formatter,
) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		formatter:       formatter,
	}
}

// ListFeed returns every event in ascending start order with its lineup,
// participant count and whether the session user is going. Events and
// participations are each loaded with a single query.
func (s *EventService) ListFeed(ctx context.Context, session *entities.Session) ([]entities.FeedEvent, error) {
	var (
		events []entities.Event
		going  []entities.Participant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		events, err = s.eventRepo.ListWithLineup(gctx)
		return err
	})
	g.Go(func() (err error) {
		going, err = s.participantRepo.FindByStatus(gctx, domain.StatusGoing)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}

	counts := make(map[int64]int64, len(events))
	joined := make(map[int64]bool)
	for _, p := range going {
		counts[p.EventID]++
		if session != nil && p.UserID == session.UserID {
			joined[p.EventID] = true
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	feed := make([]entities.FeedEvent, len(events))
	for i := range events {
		feed[i] = s.toFeedEvent(&events[i], counts[events[i].ID], joined[events[i].ID])
	}
	return feed, nil
}

func (s *EventService) toFeedEvent(e *entities.Event, count int64, subscribed bool) entities.FeedEvent {
	lineup := make([]entities.FeedDJ, 0, len(e.Lineup))
	for _, slot := range e.Lineup {
		dj := entities.FeedDJ{Time: s.formatter.Slot(slot.StartTime, slot.EndTime)}
		if slot.DJ != nil {
			dj.ID = slot.DJ.ID
			dj.Name = slot.DJ.Name()
			dj.Avatar = slot.DJ.AvatarURL
			dj.Social = slot.DJ.SocialLinks
		}
		lineup = append(lineup, dj)
	}
	return entities.FeedEvent{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Location:         e.Location,
		ImageURL:         e.BannerURL,
		VideoURL:         display.SanitizeVideoURL(e.VideoURL),
		Lineup:           lineup,
		ParticipantCount: count,
		IsSubscribed:     subscribed,
		Date:             s.formatter.Date(e.StartTime),
		Time:             s.formatter.Time(e.StartTime),
		StartTime:        e.StartTime,
	}
}
