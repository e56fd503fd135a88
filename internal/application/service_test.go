package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niti/internal/domain"
	"niti/internal/domain/entities"
	"niti/internal/infrastructure/memory"
	"niti/internal/ports/output"
	"niti/pkg/display"
	"niti/pkg/tz"
)

type fakeTranslator map[string]string

func (f fakeTranslator) T(_, key string, _ map[string]any) string {
	if v, ok := f[key]; ok {
		return v
	}
	return key
}

func newFormatter() *display.Formatter {
	return display.NewFormatter(tz.Moscow, fakeTranslator{"month.short.11": "нояб."}, "ru")
}

func newSubscriptionService(s *memory.Store) *SubscriptionService {
	return NewSubscriptionService(s.Participants(), s.Events(), s.Profiles(), newFormatter())
}

func createEvent(t *testing.T, s *memory.Store, e *entities.Event) int64 {
	t.Helper()
	require.NoError(t, s.Events().Create(context.Background(), e))
	return e.ID
}

var user7 = &entities.Session{UserID: 7, FirstName: "Anna", PhotoURL: "https://t.me/a.jpg"}

func TestSubscriptionService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	svc := newSubscriptionService(s)
	eventID := createEvent(t, s, &entities.Event{Title: "Warehouse", StartTime: time.Now().Add(time.Hour)})

	res, err := svc.Subscribe(ctx, user7, eventID)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.EqualValues(t, 1, res.ParticipantCount)

	res, err = svc.Subscribe(ctx, user7, eventID)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.EqualValues(t, 1, res.ParticipantCount)

	res, err = svc.Unsubscribe(ctx, user7, eventID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.ParticipantCount)

	res, err = svc.Unsubscribe(ctx, user7, eventID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.ParticipantCount)
}

func TestSubscriptionService_ConcurrentSubscribe(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	svc := newSubscriptionService(s)
	eventID := createEvent(t, s, &entities.Event{Title: "Rave", StartTime: time.Now().Add(time.Hour)})

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Subscribe(ctx, user7, eventID)
			assert.NoError(t, err)
			assert.EqualValues(t, 1, res.ParticipantCount)
			if res.Created {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

func TestSubscriptionService_RegistersProfileOnce(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	svc := newSubscriptionService(s)
	eventID := createEvent(t, s, &entities.Event{Title: "Rave", StartTime: time.Now().Add(time.Hour)})

	_, err := svc.Subscribe(ctx, user7, eventID)
	require.NoError(t, err)
	p, ok := s.Profiles().Profile(7)
	require.True(t, ok)
	assert.Equal(t, "user_7", p.Username)
	assert.Equal(t, "Anna", p.DisplayName)
	assert.Equal(t, "https://t.me/a.jpg", p.AvatarURL)

	p.Bio = "resident"
	require.NoError(t, s.Profiles().Save(ctx, &p))

	renamed := *user7
	renamed.FirstName = "Other"
	_, err = svc.Unsubscribe(ctx, &renamed, eventID)
	require.NoError(t, err)

	p, _ = s.Profiles().Profile(7)
	assert.Equal(t, "Anna", p.DisplayName)
	assert.Equal(t, "resident", p.Bio)
}

func TestSubscriptionService_Errors(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	svc := newSubscriptionService(s)

	_, err := svc.Subscribe(ctx, user7, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidEventID)

	_, err = svc.Unsubscribe(ctx, user7, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidEventID)

	_, err = svc.Subscribe(ctx, user7, 404)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	_, err = svc.Subscribe(ctx, nil, 1)
	assert.ErrorIs(t, err, domain.ErrSessionUserMissing)

	_, err = svc.ListUserEvents(ctx, &entities.Session{}, false)
	assert.ErrorIs(t, err, domain.ErrSessionUserMissing)
}

type failingParticipants struct {
	output.ParticipantRepository
	err error
}

func (f failingParticipants) Create(context.Context, *entities.Participant) (bool, error) {
	return false, f.err
}

func (f failingParticipants) FindByStatus(context.Context, string) ([]entities.Participant, error) {
	return nil, f.err
}

func TestSubscriptionService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("connection reset")
	svc := NewSubscriptionService(failingParticipants{s.Participants(), boom}, s.Events(), s.Profiles(), newFormatter())
	eventID := createEvent(t, s, &entities.Event{Title: "Rave", StartTime: time.Now()})

	_, err := svc.Subscribe(ctx, user7, eventID)
	assert.ErrorIs(t, err, boom)
}

func TestSubscriptionService_ListUserEvents(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	svc := newSubscriptionService(s)
	now := time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past1 := createEvent(t, s, &entities.Event{Title: "Past 1", Location: "Loft", StartTime: now.Add(-72 * time.Hour)})
	past2 := createEvent(t, s, &entities.Event{Title: "Past 2", StartTime: now.Add(-24 * time.Hour)})
	soon := createEvent(t, s, &entities.Event{Title: "Soon", BannerURL: "https://img/1.jpg", StartTime: time.Date(2025, time.November, 2, 18, 0, 0, 0, time.UTC)})
	later := createEvent(t, s, &entities.Event{Title: "Later", StartTime: now.Add(96 * time.Hour)})
	other := createEvent(t, s, &entities.Event{Title: "Not mine", StartTime: now.Add(time.Hour)})

	for _, id := range []int64{later, past1, soon, past2} {
		_, err := svc.Subscribe(ctx, user7, id)
		require.NoError(t, err)
	}
	_, err := svc.Subscribe(ctx, &entities.Session{UserID: 8}, other)
	require.NoError(t, err)

	upcoming, err := svc.ListUserEvents(ctx, user7, false)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, entities.SubscribedEvent{
		ID:        soon,
		Title:     "Soon",
		Date:      "2 нояб.",
		ImageURL:  "https://img/1.jpg",
		StartTime: "21:00",
	}, upcoming[0])
	assert.Equal(t, later, upcoming[1].ID)

	past, err := svc.ListUserEvents(ctx, user7, true)
	require.NoError(t, err)
	require.Len(t, past, 2)
	assert.Equal(t, past2, past[0].ID)
	assert.Equal(t, past1, past[1].ID)
	assert.Equal(t, "Loft", past[1].Location)

	none, err := svc.ListUserEvents(ctx, &entities.Session{UserID: 99}, false)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestEventService_ListFeed(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Profiles().Save(ctx, &entities.Profile{
		ID:          100,
		Username:    "dj_night",
		DisplayName: "DJ Night",
		AvatarURL:   "https://img/dj.jpg",
		SocialLinks: entities.SocialLinks{Instagram: "djnight"},
	}))
	start := time.Date(2025, time.November, 2, 18, 0, 0, 0, time.UTC)
	second := createEvent(t, s, &entities.Event{Title: "Second", StartTime: start.Add(24 * time.Hour), VideoURL: "https://evil.example/x"})
	first := createEvent(t, s, &entities.Event{
		Title:     "First",
		StartTime: start,
		VideoURL:  "https://www.youtube.com/watch?v=abc",
		Lineup: []entities.LineupSlot{
			{Position: 1, DJ: &entities.Profile{ID: 100}, StartTime: start, EndTime: start.Add(2 * time.Hour)},
			{Position: 2, StartTime: start.Add(2 * time.Hour)},
		},
	})

	subs := newSubscriptionService(s)
	for _, uid := range []int64{7, 8, 9} {
		_, err := subs.Subscribe(ctx, &entities.Session{UserID: uid}, first)
		require.NoError(t, err)
	}
	_, err := subs.Subscribe(ctx, &entities.Session{UserID: 8}, second)
	require.NoError(t, err)

	svc := NewEventService(s.Events(), s.Participants(), newFormatter())
	feed, err := svc.ListFeed(ctx, user7)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	got := feed[0]
	assert.Equal(t, first, got.ID)
	assert.EqualValues(t, 3, got.ParticipantCount)
	assert.True(t, got.IsSubscribed)
	assert.Equal(t, "2 нояб.", got.Date)
	assert.Equal(t, "21:00", got.Time)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", got.VideoURL)
	require.Len(t, got.Lineup, 2)
	assert.Equal(t, entities.FeedDJ{
		ID:     100,
		Name:   "DJ Night",
		Avatar: "https://img/dj.jpg",
		Time:   "21:00 - 23:00",
		Social: entities.SocialLinks{Instagram: "djnight"},
	}, got.Lineup[0])
	assert.Equal(t, "23:00", got.Lineup[1].Time)

	assert.Equal(t, second, feed[1].ID)
	assert.EqualValues(t, 1, feed[1].ParticipantCount)
	assert.False(t, feed[1].IsSubscribed)
	assert.Empty(t, feed[1].VideoURL)

	anon, err := svc.ListFeed(ctx, nil)
	require.NoError(t, err)
	assert.False(t, anon[0].IsSubscribed)
}

func TestEventService_ListFeedStoreFailure(t *testing.T) {
	s := memory.NewStore()
	boom := errors.New("timeout")
	svc := NewEventService(s.Events(), failingParticipants{s.Participants(), boom}, newFormatter())
	_, err := svc.ListFeed(context.Background(), user7)
	assert.ErrorIs(t, err, boom)
}
