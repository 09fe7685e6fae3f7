// Package services содержит бизнес-логику регистрации и чтения пользователей
// с кешированием снимков пользователь+цель.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizzytext/goalcontract/internal/lib/sl"
	"github.com/bizzytext/goalcontract/internal/models"
	"github.com/bizzytext/goalcontract/internal/schedule"
)

// ErrInvalidInput сигнализирует об ошибке в данных запроса,
// не пойманной тегами валидатора (например, неразбираемое время).
var ErrInvalidInput = errors.New("invalid input")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUserWithGoal сохраняет пользователя и цель в одной транзакции.
	CreateUserWithGoal(ctx context.Context, user models.User, goal models.Goal) (*models.UserWithGoal, error)
	// GetUserWithGoal возвращает пользователя и его первую цель.
	GetUserWithGoal(ctx context.Context, uid string) (*models.UserWithGoal, error)
	// ListDailyLogs возвращает записи журнала пользователя.
	ListDailyLogs(ctx context.Context, userUID string, date *time.Time) ([]*models.DailyLog, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// UserService реализует регистрацию и чтение пользователей.
type UserService struct {
	repo  UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Signup создает пользователя вместе с целью и возвращает созданный снимок.
func (s *UserService) Signup(ctx context.Context, req models.DummySignup) (*models.UserWithGoal, error) {
	if err := validateClocks(req); err != nil {
		return nil, err
	}

	var targetDate *time.Time
	if req.Goal.GoalDurationType == "fixed" && req.Goal.GoalDurationValue != "" {
		parsed, err := time.Parse("2006-01-02", req.Goal.GoalDurationValue)
		if err != nil {
			return nil, fmt.Errorf("%w: goal_duration_value must be 2006-01-02", ErrInvalidInput)
		}
		targetDate = &parsed
	}

	user := models.User{
		FullName:               req.FullName,
		Email:                  req.Email,
		PhoneNumber:            req.PhoneNumber,
		Timezone:               req.Timezone,
		NotificationPreference: req.NotificationPreference,
		DailyStartTime:         req.DailyStartTime,
		DailyEndTime:           req.DailyEndTime,
		TriggerType:            req.TriggerType,
		TriggerTime:            req.TriggerTime,
		TriggerHabit:           req.TriggerHabit,
		Tone:                   req.Tone,
		BuddyName:              req.BuddyName,
		Mantra:                 req.Mantra,
		IsDemo:                 req.IsDemo,
		MondayHour1Enabled:     req.MondayHour1Enabled,
		MondayHour1DayOfWeek:   req.MondayHour1DayOfWeek,
		MondayHour1Time:        req.MondayHour1Time,
	}
	goal := models.Goal{
		Description: req.Goal.GoalText,
		TargetDate:  targetDate,
	}

	created, err := s.repo.CreateUserWithGoal(ctx, user, goal)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new user with goal", slog.String("uid", created.User.UID))

	cacheKey := fmt.Sprintf("user:%s", created.User.UID)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache user snapshot", slog.String("key", cacheKey), sl.Err(err))
	}

	return created, nil
}

// Get возвращает снимок пользователь+цель, используя кеш или репозиторий.
func (s *UserService) Get(ctx context.Context, uid string) (*models.UserWithGoal, error) {
	var result *models.UserWithGoal
	cacheKey := fmt.Sprintf("user:%s", uid)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read user snapshot from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetUserWithGoal(ctx, uid)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache user snapshot", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// Logs возвращает записи журнала пользователя, при заданной date — за одну дату.
// Отсутствие пользователя даёт ту же ошибку, что и Get.
func (s *UserService) Logs(ctx context.Context, uid string, date *time.Time) ([]*models.DailyLog, error) {
	if _, err := s.Get(ctx, uid); err != nil {
		return nil, err
	}
	return s.repo.ListDailyLogs(ctx, uid, date)
}

func validateClocks(req models.DummySignup) error {
	if _, err := schedule.ParseClock(req.DailyStartTime); err != nil {
		return fmt.Errorf("%w: daily_start_time: %v", ErrInvalidInput, err)
	}
	if _, err := schedule.ParseClock(req.DailyEndTime); err != nil {
		return fmt.Errorf("%w: daily_end_time: %v", ErrInvalidInput, err)
	}
	if req.TriggerTime != "" {
		if _, err := schedule.ParseClock(req.TriggerTime); err != nil {
			return fmt.Errorf("%w: trigger_time: %v", ErrInvalidInput, err)
		}
	}
	if req.MondayHour1Time != "" {
		if _, err := schedule.ParseClock(req.MondayHour1Time); err != nil {
			return fmt.Errorf("%w: monday_hour_1_time: %v", ErrInvalidInput, err)
		}
	}
	return nil
}
