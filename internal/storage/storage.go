// Package storage реализует хранилище данных на основе PostgreSQL:
// пользователи с настройками дня, их цели и журнал отправленных сообщений.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, на которые опираются предусловия сервисов.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrGoalNotFound = errors.New("user has no goal")
	ErrEmailExists  = errors.New("user with this email already exists")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ping проверяет готовность базы данных, используется health-эндпоинтом.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"

	var now string
	if err := s.DB.QueryRowContext(ctx, `SELECT NOW()::text`).Scan(&now); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
