package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bizzytext/goalcontract/internal/models"
	"github.com/bizzytext/goalcontract/internal/storage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUserWithGoal(ctx context.Context, user models.User, goal models.Goal) (*models.UserWithGoal, error) {
	args := m.Called(ctx, user, goal)
	if res := args.Get(0); res != nil {
		return res.(*models.UserWithGoal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetUserWithGoal(ctx context.Context, uid string) (*models.UserWithGoal, error) {
	args := m.Called(ctx, uid)
	if res := args.Get(0); res != nil {
		return res.(*models.UserWithGoal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListDailyLogs(ctx context.Context, userUID string, date *time.Time) ([]*models.DailyLog, error) {
	args := m.Called(ctx, userUID, date)
	if res := args.Get(0); res != nil {
		return res.([]*models.DailyLog), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validSignup() models.DummySignup {
	return models.DummySignup{
		FullName:               "Alex Doe",
		Email:                  "alex@example.com",
		Timezone:               "America/New_York",
		NotificationPreference: models.NotifyBoth,
		DailyStartTime:         "08:00",
		DailyEndTime:           "22:00",
		TriggerType:            "time",
		TriggerTime:            "07:30",
		Tone:                   "drill sergeant",
		BuddyName:              "Coach",
		Goal: models.DummyGoal{
			GoalText:          "run a marathon",
			GoalDurationType:  "fixed",
			GoalDurationValue: "2025-06-01",
		},
	}
}

func TestSignup_Success(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	created := &models.UserWithGoal{
		User: models.User{UID: "abc-123", FullName: "Alex Doe"},
		Goal: models.Goal{ID: 1, Description: "run a marathon"},
	}
	repo.On("CreateUserWithGoal", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "alex@example.com" && u.DailyStartTime == "08:00"
	}), mock.MatchedBy(func(g models.Goal) bool {
		return g.Description == "run a marathon" && g.TargetDate != nil
	})).Return(created, nil).Once()
	cache.On("Set", "user:abc-123", created, time.Hour).Return(nil).Once()

	svc := NewUserService(repo, cache, newNoopLogger())
	result, err := svc.Signup(context.Background(), validSignup())

	require.NoError(t, err)
	assert.Equal(t, "abc-123", result.User.UID)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSignup_InvalidClock(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	req := validSignup()
	req.DailyStartTime = "25:99"

	svc := NewUserService(repo, cache, newNoopLogger())
	_, err := svc.Signup(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateUserWithGoal", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignup_InvalidFixedGoalDate(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	req := validSignup()
	req.Goal.GoalDurationValue = "June 1st"

	svc := NewUserService(repo, cache, newNoopLogger())
	_, err := svc.Signup(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateUserWithGoal", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignup_DuplicateEmailPassedThrough(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	repo.On("CreateUserWithGoal", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, storage.ErrEmailExists).Once()

	svc := NewUserService(repo, cache, newNoopLogger())
	_, err := svc.Signup(context.Background(), validSignup())

	require.ErrorIs(t, err, storage.ErrEmailExists)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_CacheHitSkipsRepository(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	snapshot := &models.UserWithGoal{User: models.User{UID: "abc-123"}}
	cache.On("Get", "user:abc-123", mock.Anything).Return(true, nil).Once().
		Run(func(args mock.Arguments) {
			out := args.Get(1).(**models.UserWithGoal)
			*out = snapshot
		})

	svc := NewUserService(repo, cache, newNoopLogger())
	result, err := svc.Get(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.Equal(t, "abc-123", result.User.UID)
	repo.AssertNotCalled(t, "GetUserWithGoal", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestGet_CacheMissReadsRepository(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	snapshot := &models.UserWithGoal{User: models.User{UID: "abc-123"}}
	cache.On("Get", "user:abc-123", mock.Anything).Return(false, nil).Once()
	repo.On("GetUserWithGoal", mock.Anything, "abc-123").Return(snapshot, nil).Once()
	cache.On("Set", "user:abc-123", snapshot, time.Hour).Return(nil).Once()

	svc := NewUserService(repo, cache, newNoopLogger())
	result, err := svc.Get(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.Equal(t, "abc-123", result.User.UID)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestLogs_UserNotFound(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	cache.On("Get", "user:missing", mock.Anything).Return(false, nil).Once()
	repo.On("GetUserWithGoal", mock.Anything, "missing").Return(nil, storage.ErrUserNotFound).Once()

	svc := NewUserService(repo, cache, newNoopLogger())
	_, err := svc.Logs(context.Background(), "missing", nil)

	require.ErrorIs(t, err, storage.ErrUserNotFound)
	repo.AssertNotCalled(t, "ListDailyLogs", mock.Anything, mock.Anything, mock.Anything)
}
