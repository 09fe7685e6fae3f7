package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bizzytext/goalcontract/internal/migrations"
	"github.com/bizzytext/goalcontract/internal/models"
	"github.com/bizzytext/goalcontract/internal/storage"
)

func setupTestDatabase(t *testing.T) (*storage.Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
			wait.ForListeningPort(nat.Port("5432/tcp")),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := storage.New(dsn)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(store.DB, "../../migrations"))

	cleanup := func() {
		store.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return store, cleanup
}

func testSignup(phone string) (models.User, models.Goal) {
	target := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	user := models.User{
		FullName:               "Pat Doe",
		Email:                  "pat@example.com",
		PhoneNumber:            phone,
		Timezone:               "America/New_York",
		NotificationPreference: models.NotifyBoth,
		DailyStartTime:         "08:00",
		DailyEndTime:           "22:00",
		TriggerType:            "habit",
		TriggerHabit:           "morning coffee",
		Tone:                   "gentle coach",
		BuddyName:              "Rocky",
		MondayHour1Enabled:     true,
		MondayHour1DayOfWeek:   "Monday",
		MondayHour1Time:        "18:30",
	}
	goal := models.Goal{
		Description: "run a marathon",
		TargetDate:  &target,
	}
	return user, goal
}

func TestStorage_CreateAndGetUserWithGoal(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	user, goal := testSignup("+15551230000")

	created, err := store.CreateUserWithGoal(ctx, user, goal)
	require.NoError(t, err)
	require.NotEmpty(t, created.User.UID)
	require.NotZero(t, created.Goal.ID)

	got, err := store.GetUserWithGoal(ctx, created.User.UID)
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", got.User.Email)
	assert.Equal(t, "08:00", got.User.DailyStartTime)
	assert.Equal(t, "22:00", got.User.DailyEndTime)
	assert.Equal(t, "morning coffee", got.User.TriggerHabit)
	assert.Equal(t, "18:30", got.User.MondayHour1Time)
	assert.True(t, got.User.MondayHour1Enabled)
	assert.Equal(t, "run a marathon", got.Goal.Description)
	require.NotNil(t, got.Goal.TargetDate)
	assert.Equal(t, 2026, got.Goal.TargetDate.Year())
}

func TestStorage_CreateUserWithGoal_DuplicateEmail(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	user, goal := testSignup("+15551230000")

	_, err := store.CreateUserWithGoal(ctx, user, goal)
	require.NoError(t, err)

	user.PhoneNumber = "+15559990000"
	_, err = store.CreateUserWithGoal(ctx, user, goal)
	require.ErrorIs(t, err, storage.ErrEmailExists)
}

func TestStorage_GetUserWithGoal_NotFound(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := store.GetUserWithGoal(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_SaveAndListDailyLogs(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	user, goal := testSignup("")
	created, err := store.CreateUserWithGoal(ctx, user, goal)
	require.NoError(t, err)

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	entries := []models.DailyLog{
		{UserUID: created.User.UID, Date: day, MessageType: "morning", MessageContent: "body-1", AIPromptUsed: "prompt-1", SentAt: now, IsSent: true},
		{UserUID: created.User.UID, Date: day, MessageType: "trigger", MessageContent: "body-2", AIPromptUsed: "prompt-2", SentAt: now, IsSent: false},
	}

	saved, err := store.SaveDailyLogs(ctx, entries)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotZero(t, saved[0].ID)
	assert.NotZero(t, saved[1].ID)

	listed, err := store.ListDailyLogs(ctx, created.User.UID, &day)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "morning", listed[0].MessageType)
	assert.True(t, listed[0].IsSent)
	assert.False(t, listed[1].IsSent)

	other := day.AddDate(0, 0, 1)
	listed, err = store.ListDailyLogs(ctx, created.User.UID, &other)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestStorage_CascadeDeleteRemovesGoalsAndLogs(t *testing.T) {
	store, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	user, goal := testSignup("")
	created, err := store.CreateUserWithGoal(ctx, user, goal)
	require.NoError(t, err)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err = store.SaveDailyLogs(ctx, []models.DailyLog{
		{UserUID: created.User.UID, Date: day, MessageType: "morning", MessageContent: "b", AIPromptUsed: "p", SentAt: day, IsSent: false},
	})
	require.NoError(t, err)

	_, err = store.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, created.User.UID)
	require.NoError(t, err)

	var goals, logs int
	require.NoError(t, store.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals`).Scan(&goals))
	require.NoError(t, store.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_logs`).Scan(&logs))
	assert.Zero(t, goals)
	assert.Zero(t, logs)
}
