//go:build integration

package database_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niti/internal/domain"
	"niti/internal/domain/entities"
	"niti/internal/infrastructure/database"
	"niti/internal/infrastructure/database/queries"
)

func setupQueries(t *testing.T) *queries.Queries {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is not set")
	}
	require.NoError(t, database.RunMigrations(dsn))

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return queries.New(pool)
}

func newUserID() int64 {
	return int64(uuid.New().ID())
}

func TestRepositories_SubscriptionLifecycle(t *testing.T) {
	q := setupQueries(t)
	ctx := context.Background()
	events := database.NewEventRepository(q)
	participants := database.NewParticipantRepository(q)
	profiles := database.NewProfileRepository(q)

	djID := newUserID()
	require.NoError(t, profiles.Save(ctx, &entities.Profile{
		ID:          djID,
		Username:    "dj_" + uuid.NewString()[:8],
		DisplayName: "DJ Test",
		SocialLinks: entities.SocialLinks{Instagram: "djtest"},
	}))

	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	event := &entities.Event{
		Title:     "Integration",
		StartTime: start,
		Lineup: []entities.LineupSlot{
			{Position: 1, DJ: &entities.Profile{ID: djID}, StartTime: start, EndTime: start.Add(time.Hour)},
			{Position: 2, StartTime: start.Add(time.Hour)},
		},
	}
	require.NoError(t, events.Create(ctx, event))
	require.NotZero(t, event.ID)

	found, err := events.FindByIDs(ctx, []int64{event.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].StartTime.Equal(start))

	all, err := events.ListWithLineup(ctx)
	require.NoError(t, err)
	var got *entities.Event
	for i := range all {
		if all[i].ID == event.ID {
			got = &all[i]
		}
	}
	require.NotNil(t, got)
	require.Len(t, got.Lineup, 2)
	require.NotNil(t, got.Lineup[0].DJ)
	assert.Equal(t, "djtest", got.Lineup[0].DJ.SocialLinks.Instagram)
	assert.Nil(t, got.Lineup[1].DJ)
	assert.True(t, got.Lineup[1].EndTime.IsZero())

	userID := newUserID()
	created, err := profiles.EnsureExists(ctx, &entities.Profile{ID: userID, Username: "first"})
	require.NoError(t, err)
	assert.True(t, created)
	created, err = profiles.EnsureExists(ctx, &entities.Profile{ID: userID, Username: "second"})
	require.NoError(t, err)
	assert.False(t, created)

	const n = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := participants.Create(ctx, &entities.Participant{EventID: event.ID, UserID: userID, Status: domain.StatusGoing})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	count, err := participants.CountByEventIDAndStatus(ctx, event.ID, domain.StatusGoing)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	mine, err := participants.FindByUserIDAndStatus(ctx, userID, domain.StatusGoing)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, event.ID, mine[0].EventID)

	removed, err := participants.DeleteByEventIDAndUserID(ctx, event.ID, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	removed, err = participants.DeleteByEventIDAndUserID(ctx, event.ID, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)
}

func TestParticipantRepository_UnknownEvent(t *testing.T) {
	q := setupQueries(t)
	ctx := context.Background()
	profiles := database.NewProfileRepository(q)
	participants := database.NewParticipantRepository(q)

	userID := newUserID()
	_, err := profiles.EnsureExists(ctx, &entities.Profile{ID: userID, Username: "ghost"})
	require.NoError(t, err)

	_, err = participants.Create(ctx, &entities.Participant{EventID: 1 << 40, UserID: userID, Status: domain.StatusGoing})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
