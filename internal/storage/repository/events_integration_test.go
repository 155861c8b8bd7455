package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sole-app/sole-backend/internal/apperr"
	"github.com/sole-app/sole-backend/internal/migrations"
	"github.com/sole-app/sole-backend/internal/models"
)

func setupStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

func registerTestUser(t *testing.T, storage *Storage, username, email string) int {
	id, err := storage.RegisterUser(context.Background(), models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		DOB:          time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Subscription: models.SubscriptionFreeTrial,
	})
	require.NoError(t, err)
	return id
}

func TestCreateAndListEvents(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	alice := registerTestUser(t, storage, "alice", "alice@example.com")
	bob := registerTestUser(t, storage, "bob", "bob@example.com")

	id, err := storage.CreateEventWithAttendees(ctx, models.Event{
		Title:         "Team sync",
		StartDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}, []int{alice, bob})
	require.NoError(t, err)
	require.NotZero(t, id)

	events, err := storage.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Team sync", events[0].Title)
	require.Len(t, events[0].Attendees, 2)
	require.Equal(t, "alice", events[0].Attendees[0].Name)
	require.Equal(t, "bob", events[0].Attendees[1].Name)
}

func TestCreateEventUnknownAttendee(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	alice := registerTestUser(t, storage, "alice", "alice@example.com")

	_, err := storage.CreateEventWithAttendees(ctx, models.Event{
		Title:         "Team sync",
		StartDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}, []int{alice, 999})
	require.ErrorIs(t, err, apperr.ErrValidation)

	// Транзакция откатилась целиком, событие не появилось.
	events, err := storage.ListEvents(ctx)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestUpdateEventReplacesAttendees(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	alice := registerTestUser(t, storage, "alice", "alice@example.com")
	bob := registerTestUser(t, storage, "bob", "bob@example.com")
	carol := registerTestUser(t, storage, "carol", "carol@example.com")

	id, err := storage.CreateEventWithAttendees(ctx, models.Event{
		Title:         "Team sync",
		StartDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}, []int{alice, bob})
	require.NoError(t, err)

	err = storage.UpdateEventWithAttendees(ctx, models.Event{
		ID:            id,
		Title:         "Renamed",
		StartDatetime: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC),
	}, []int{carol})
	require.NoError(t, err)

	ev, err := storage.GetEventWithAttendees(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Renamed", ev.Title)
	require.Len(t, ev.Attendees, 1)
	require.Equal(t, "carol", ev.Attendees[0].Name)
}

func TestUpdateEventClearsAttendees(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	alice := registerTestUser(t, storage, "alice", "alice@example.com")

	id, err := storage.CreateEventWithAttendees(ctx, models.Event{
		Title:         "Solo",
		StartDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}, []int{alice})
	require.NoError(t, err)

	err = storage.UpdateEventWithAttendees(ctx, models.Event{
		ID:            id,
		Title:         "Solo",
		StartDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}, []int{})
	require.NoError(t, err)

	ev, err := storage.GetEventWithAttendees(ctx, id)
	require.NoError(t, err)
	require.Empty(t, ev.Attendees)

	mine, err := storage.ListEventsForUser(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, mine)
}

func TestUpdateMissingEvent(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	alice := registerTestUser(t, storage, "alice", "alice@example.com")

	err := storage.UpdateEventWithAttendees(ctx, models.Event{
		ID:            999,
		Title:         "Ghost",
		StartDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}, []int{alice})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListEventsForUser(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	alice := registerTestUser(t, storage, "alice", "alice@example.com")
	bob := registerTestUser(t, storage, "bob", "bob@example.com")

	_, err := storage.CreateEventWithAttendees(ctx, models.Event{
		Title:         "Shared",
		StartDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}, []int{alice, bob})
	require.NoError(t, err)

	_, err = storage.CreateEventWithAttendees(ctx, models.Event{
		Title:         "Only bob",
		StartDatetime: time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC),
	}, []int{bob})
	require.NoError(t, err)

	mine, err := storage.ListEventsForUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Shared", mine[0].Title)

	bobs, err := storage.ListEventsForUser(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobs, 2)
}
