// Package services реализует оркестратор дневной симуляции: вычисление
// расписания слотов, генерацию и оформление текстов, независимую доставку
// по каналам и пакетную запись журнала.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizzytext/goalcontract/internal/compose"
	"github.com/bizzytext/goalcontract/internal/emailprovider"
	"github.com/bizzytext/goalcontract/internal/generation"
	"github.com/bizzytext/goalcontract/internal/lib/sl"
	"github.com/bizzytext/goalcontract/internal/metrics"
	"github.com/bizzytext/goalcontract/internal/models"
	"github.com/bizzytext/goalcontract/internal/schedule"
)

// SimulationRepository определяет методы хранилища, нужные оркестратору.
type SimulationRepository interface {
	// GetUserWithGoal возвращает снимок пользователь+цель.
	GetUserWithGoal(ctx context.Context, uid string) (*models.UserWithGoal, error)
	// SaveDailyLogs записывает журнал прогона одной транзакцией.
	SaveDailyLogs(ctx context.Context, entries []models.DailyLog) ([]models.DailyLog, error)
}

// Generator описывает генерацию текста по промпту.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SMSSender описывает отправку SMS, возвращает идентификатор сообщения провайдера.
type SMSSender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// EmailSender описывает отправку письма, возвращает идентификатор письма провайдера.
type EmailSender interface {
	Send(ctx context.Context, to, buddyName, subject, body string) (string, error)
}

// EventPublisher публикует события о записанных в журнал сообщениях.
type EventPublisher interface {
	PublishDispatched(entry models.DailyLog) error
}

// Preview — одно сообщение прогона для ответа клиенту. Возвращается всегда,
// независимо от исхода доставки.
type Preview struct {
	Slot         string `json:"slot"`
	ScheduledFor string `json:"scheduled_for"`
	Content      string `json:"content"`
	IsSent       bool   `json:"is_sent"`
}

// RunResult — итог одного прогона симуляции.
type RunResult struct {
	UserFullName string    `json:"user_full_name"`
	Previews     []Preview `json:"messages"`
	LoggedIDs    []int     `json:"logged_message_ids"`
}

// SimulationService координирует один прогон дневной симуляции.
type SimulationService struct {
	repo      SimulationRepository
	generator Generator
	sms       SMSSender
	email     EmailSender
	events    EventPublisher // nil — публикация событий отключена
	demoPause time.Duration
	log       *slog.Logger
	now       func() time.Time
}

// NewSimulationService создает новый экземпляр SimulationService.
func NewSimulationService(repo SimulationRepository, generator Generator, sms SMSSender,
	email EmailSender, events EventPublisher, demoPause time.Duration, log *slog.Logger) *SimulationService {
	return &SimulationService{
		repo:      repo,
		generator: generator,
		sms:       sms,
		email:     email,
		events:    events,
		demoPause: demoPause,
		log:       log,
		now:       time.Now,
	}
}

// WithClock подменяет источник текущего времени, используется в тестах.
func (s *SimulationService) WithClock(now func() time.Time) *SimulationService {
	s.now = now
	return s
}

// Run выполняет один прогон: читает снимок пользователя, проходит слоты
// в фиксированном порядке и в конце записывает журнал одной транзакцией.
//
// Момент "сейчас" захватывается один раз на весь прогон в таймзоне
// пользователя — все слоты согласны о том, какой сегодня день.
func (s *SimulationService) Run(ctx context.Context, userUID string) (*RunResult, error) {
	const op = "services.simulation.Run"

	snapshot, err := s.repo.GetUserWithGoal(ctx, userUID)
	if err != nil {
		metrics.ObserveSimulationRun(metrics.StatusFailed)
		return nil, err
	}
	user := snapshot.User
	goal := snapshot.Goal

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		s.log.Warn("unknown user timezone, falling back to UTC",
			slog.String("timezone", user.Timezone), sl.Err(err))
		loc = time.UTC
	}
	now := s.now().In(loc)

	slotTimes, err := s.slotTimes(&user, now)
	if err != nil {
		metrics.ObserveSimulationRun(metrics.StatusFailed)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	kinds := compose.DailyKinds(user.MondayHour1Enabled)
	staged := make([]models.DailyLog, 0, len(kinds))
	previews := make([]Preview, 0, len(kinds))
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for i, kind := range kinds {
		if i > 0 && user.IsDemo && s.demoPause > 0 {
			select {
			case <-time.After(s.demoPause):
			case <-ctx.Done():
				metrics.ObserveSimulationRun(metrics.StatusFailed)
				return nil, ctx.Err()
			}
		}

		prompt := compose.BuildPrompt(kind, &user, &goal)
		text, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			s.log.Warn("generation failed, using fallback text",
				slog.String("slot", string(kind)), sl.Err(err))
			metrics.IncGenerationFallback()
			text = generation.Fallback
		}

		label := schedule.Label12h(slotTimes[kind])
		body := compose.RenderBody(kind, text, &user, &goal, label, now)
		metrics.IncSlotMessage(string(kind))

		sent := s.dispatch(ctx, kind, &user, body, now)

		staged = append(staged, models.DailyLog{
			UserUID:        user.UID,
			Date:           day,
			MessageType:    string(kind),
			MessageContent: body,
			AIPromptUsed:   prompt,
			SentAt:         now,
			IsSent:         sent,
		})
		previews = append(previews, Preview{
			Slot:         string(kind),
			ScheduledFor: label,
			Content:      body,
			IsSent:       sent,
		})
	}

	saved, err := s.repo.SaveDailyLogs(ctx, staged)
	if err != nil {
		metrics.ObserveSimulationRun(metrics.StatusFailed)
		return nil, err
	}
	metrics.ObserveSimulationRun(metrics.StatusOK)

	ids := make([]int, 0, len(saved))
	for _, entry := range saved {
		ids = append(ids, entry.ID)
		if s.events == nil {
			continue
		}
		if err := s.events.PublishDispatched(entry); err != nil {
			s.log.Warn("failed to publish dispatched event",
				slog.Int("log_id", entry.ID), sl.Err(err))
		}
	}

	s.log.Info("simulation run complete",
		slog.String("user_uid", user.UID),
		slog.Int("slots", len(saved)))

	return &RunResult{
		UserFullName: user.FullName,
		Previews:     previews,
		LoggedIDs:    ids,
	}, nil
}

// dispatch пытается доставить сообщение по каждому включённому каналу.
// Каналы независимы: сбой одного не мешает другому и не мешает записать
// журнал. Слот считается отправленным, если удался хотя бы один канал.
func (s *SimulationService) dispatch(ctx context.Context, kind compose.Kind, user *models.User, body string, now time.Time) bool {
	sent := false

	if user.WantsSMS() && user.PhoneNumber != "" {
		ref, err := s.sms.Send(ctx, user.PhoneNumber, body)
		if err != nil {
			s.log.Warn("sms not sent", slog.String("slot", string(kind)), sl.Err(err))
			metrics.IncDelivery("sms", metrics.OutcomeNotSent)
		} else {
			s.log.Info("sms sent", slog.String("slot", string(kind)), slog.String("ref", ref))
			metrics.IncDelivery("sms", metrics.OutcomeSent)
			sent = true
		}
	}

	if user.WantsEmail() && user.Email != "" {
		subject := emailprovider.Subject(compose.Label(kind), now)
		ref, err := s.email.Send(ctx, user.Email, user.BuddyName, subject, body)
		if err != nil {
			s.log.Warn("email not sent", slog.String("slot", string(kind)), sl.Err(err))
			metrics.IncDelivery("email", metrics.OutcomeNotSent)
		} else {
			s.log.Info("email sent", slog.String("slot", string(kind)), slog.String("ref", ref))
			metrics.IncDelivery("email", metrics.OutcomeSent)
			sent = true
		}
	}

	return sent
}

// slotTimes вычисляет времена всех слотов прогона на дате now.
func (s *SimulationService) slotTimes(user *models.User, now time.Time) (map[compose.Kind]time.Time, error) {
	startMin, err := schedule.ParseClock(user.DailyStartTime)
	if err != nil {
		return nil, fmt.Errorf("daily_start_time: %w", err)
	}
	endMin, err := schedule.ParseClock(user.DailyEndTime)
	if err != nil {
		return nil, fmt.Errorf("daily_end_time: %w", err)
	}

	triggerMin := startMin
	if user.TriggerTime != "" {
		if parsed, err := schedule.ParseClock(user.TriggerTime); err == nil {
			triggerMin = parsed
		}
	}

	slots := schedule.Compute(now, startMin, endMin, triggerMin)
	times := map[compose.Kind]time.Time{
		compose.KindMorning:  slots.Morning,
		compose.KindTrigger:  slots.Trigger,
		compose.KindMidday:   slots.Midday,
		compose.KindWindDown: slots.WindDown,
	}
	if user.MondayHour1Enabled {
		times[compose.KindWeekly] = schedule.WeeklyAt(now, user.MondayHour1Time)
	}
	return times, nil
}
