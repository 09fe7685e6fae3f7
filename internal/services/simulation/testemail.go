package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizzytext/goalcontract/internal/emailprovider"
)

// ErrNoEmail возвращается, когда у пользователя не указан адрес почты.
var ErrNoEmail = errors.New("user has no email address")

// SendTest отправляет пользователю проверочное письмо, минуя генерацию
// и журнал. Возвращает идентификатор письма у провайдера.
func (s *SimulationService) SendTest(ctx context.Context, userUID string) (string, error) {
	snapshot, err := s.repo.GetUserWithGoal(ctx, userUID)
	if err != nil {
		return "", err
	}
	user := snapshot.User
	if user.Email == "" {
		return "", ErrNoEmail
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := s.now().In(loc)

	body := fmt.Sprintf(
		"This is a test message from your accountability buddy %s. "+
			"If you can read this, email delivery is working. Goal on file: %s.",
		user.BuddyName, snapshot.Goal.Description)
	subject := emailprovider.Subject("TEST MESSAGE", now)

	ref, err := s.email.Send(ctx, user.Email, user.BuddyName, subject, body)
	if err != nil {
		return "", err
	}
	s.log.Info("test email sent", slog.String("user_uid", user.UID), slog.String("ref", ref))
	return ref, nil
}
