package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bizzytext/goalcontract/internal/models"
)

const userColumns = `uid, full_name, email, COALESCE(phone_number, ''), timezone,
	notification_preference,
	to_char(daily_start_time, 'HH24:MI'), to_char(daily_end_time, 'HH24:MI'),
	trigger_type, COALESCE(to_char(trigger_time, 'HH24:MI'), ''), COALESCE(trigger_habit, ''),
	tone, buddy_name, COALESCE(mantra, ''), is_demo,
	monday_hour_1_enabled, COALESCE(monday_hour_1_day_of_week, ''),
	COALESCE(to_char(monday_hour_1_time, 'HH24:MI'), ''),
	created_at, updated_at`

// CreateUserWithGoal сохраняет пользователя и его цель в одной транзакции
// и возвращает созданный снимок. Повторный email даёт ErrEmailExists.
func (s *Storage) CreateUserWithGoal(ctx context.Context, user models.User, goal models.Goal) (*models.UserWithGoal, error) {
	const op = "storage.CreateUserWithGoal"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck // после Commit откат — no-op

	insertUser := `INSERT INTO users (full_name, email, phone_number, timezone, notification_preference,
			daily_start_time, daily_end_time, trigger_type, trigger_time, trigger_habit,
			tone, buddy_name, mantra, is_demo,
			monday_hour_1_enabled, monday_hour_1_day_of_week, monday_hour_1_time)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5,
			$6::time, $7::time, $8, NULLIF($9, '')::time, NULLIF($10, ''),
			$11, $12, NULLIF($13, ''), $14,
			$15, NULLIF($16, ''), NULLIF($17, '')::time)
		RETURNING uid, created_at, updated_at`

	if err := tx.QueryRowContext(ctx, insertUser,
		user.FullName, user.Email, user.PhoneNumber, user.Timezone, user.NotificationPreference,
		user.DailyStartTime, user.DailyEndTime, user.TriggerType, user.TriggerTime, user.TriggerHabit,
		user.Tone, user.BuddyName, user.Mantra, user.IsDemo,
		user.MondayHour1Enabled, user.MondayHour1DayOfWeek, user.MondayHour1Time,
	).Scan(&user.UID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	insertGoal := `INSERT INTO goals (user_uid, description, target_date, is_completed, progress)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at`

	goal.UserUID = user.UID
	if err := tx.QueryRowContext(ctx, insertGoal,
		goal.UserUID, goal.Description, goal.TargetDate, goal.IsCompleted, goal.Progress,
	).Scan(&goal.ID, &goal.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.UserWithGoal{User: user, Goal: goal}, nil
}

// GetUserWithGoal возвращает пользователя и его первую цель.
// Отсутствие пользователя — ErrUserNotFound, отсутствие цели — ErrGoalNotFound.
func (s *Storage) GetUserWithGoal(ctx context.Context, uid string) (*models.UserWithGoal, error) {
	const op = "storage.GetUserWithGoal"

	var u models.User
	queryUser := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	if err := s.DB.QueryRowContext(ctx, queryUser, uid).Scan(
		&u.UID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Timezone,
		&u.NotificationPreference,
		&u.DailyStartTime, &u.DailyEndTime,
		&u.TriggerType, &u.TriggerTime, &u.TriggerHabit,
		&u.Tone, &u.BuddyName, &u.Mantra, &u.IsDemo,
		&u.MondayHour1Enabled, &u.MondayHour1DayOfWeek, &u.MondayHour1Time,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var g models.Goal
	queryGoal := `SELECT id, user_uid, description, created_at, target_date, is_completed, COALESCE(progress, '')
		FROM goals WHERE user_uid = $1 ORDER BY id LIMIT 1`
	if err := s.DB.QueryRowContext(ctx, queryGoal, uid).Scan(
		&g.ID, &g.UserUID, &g.Description, &g.CreatedAt, &g.TargetDate, &g.IsCompleted, &g.Progress,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrGoalNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.UserWithGoal{User: u, Goal: g}, nil
}
