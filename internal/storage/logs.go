package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/bizzytext/goalcontract/internal/models"
)

// SaveDailyLogs вставляет все записи журнала одного прогона в одной
// транзакции и возвращает их с присвоенными ID. Ошибка на любой записи
// откатывает весь пакет — частичной фиксации журнала не бывает.
func (s *Storage) SaveDailyLogs(ctx context.Context, entries []models.DailyLog) ([]models.DailyLog, error) {
	const op = "storage.SaveDailyLogs"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck // после Commit откат — no-op

	query := `INSERT INTO daily_logs (user_uid, date, message_type, message_content, ai_prompt_used, sent_at, is_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	saved := make([]models.DailyLog, 0, len(entries))
	for _, entry := range entries {
		if err := tx.QueryRowContext(ctx, query,
			entry.UserUID, entry.Date, entry.MessageType, entry.MessageContent,
			entry.AIPromptUsed, entry.SentAt, entry.IsSent,
		).Scan(&entry.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		saved = append(saved, entry)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

// ListDailyLogs возвращает записи журнала пользователя, при заданной
// date — только за эту календарную дату.
func (s *Storage) ListDailyLogs(ctx context.Context, userUID string, date *time.Time) ([]*models.DailyLog, error) {
	const op = "storage.ListDailyLogs"

	query := `SELECT id, user_uid, date, message_type, message_content, ai_prompt_used, sent_at, is_sent
		FROM daily_logs
		WHERE user_uid = $1 AND ($2::date IS NULL OR date = $2::date)
		ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userUID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.DailyLog
	for rows.Next() {
		var item models.DailyLog
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Date, &item.MessageType,
			&item.MessageContent, &item.AIPromptUsed, &item.SentAt, &item.IsSent); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
