// Package models содержит доменные структуры сервиса: пользователь с настройками
// дня и уведомлений, цель и журнал отправленных сообщений, а также вспомогательные
// типы для приёма данных из JSON-запросов.
package models

import "time"

// Значения предпочтения каналов уведомлений.
const (
	NotifySMS   = "sms"
	NotifyEmail = "email"
	NotifyBoth  = "both"
)

// User представляет зарегистрированного пользователя сервиса.
// Времена дня (DailyStartTime и прочие) хранятся строками в формате "15:04",
// как они приходят из запроса и уходят в колонку TIME.
type User struct {
	UID                    string    `json:"id"`
	FullName               string    `json:"full_name"`
	Email                  string    `json:"email"`
	PhoneNumber            string    `json:"phone_number,omitempty"`
	Timezone               string    `json:"timezone"`
	NotificationPreference string    `json:"notification_preference"` // sms, email или both
	DailyStartTime         string    `json:"daily_start_time"`
	DailyEndTime           string    `json:"daily_end_time"`
	TriggerType            string    `json:"trigger_type"` // time, habit или both
	TriggerTime            string    `json:"trigger_time,omitempty"`
	TriggerHabit           string    `json:"trigger_habit,omitempty"`
	Tone                   string    `json:"tone"`
	BuddyName              string    `json:"buddy_name"`
	Mantra                 string    `json:"mantra,omitempty"`
	IsDemo                 bool      `json:"is_demo"`
	MondayHour1Enabled     bool      `json:"monday_hour_1_enabled"`
	MondayHour1DayOfWeek   string    `json:"monday_hour_1_day_of_week,omitempty"`
	MondayHour1Time        string    `json:"monday_hour_1_time,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// WantsSMS сообщает, включён ли SMS-канал в настройках пользователя.
func (u *User) WantsSMS() bool {
	return u.NotificationPreference == NotifySMS || u.NotificationPreference == NotifyBoth
}

// WantsEmail сообщает, включён ли email-канал в настройках пользователя.
func (u *User) WantsEmail() bool {
	return u.NotificationPreference == NotifyEmail || u.NotificationPreference == NotifyBoth
}

// DummySignup используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User и Goal.
// Времена приходят строками "15:04", чтобы их можно было валидировать и парсить вручную.
type DummySignup struct {
	FullName               string    `json:"full_name" validate:"required,max=255"`
	Email                  string    `json:"email" validate:"required,email"`
	PhoneNumber            string    `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Timezone               string    `json:"timezone" validate:"required,max=50"`
	NotificationPreference string    `json:"notification_preference" validate:"required,oneof=sms email both"`
	DailyStartTime         string    `json:"daily_start_time" validate:"required"`
	DailyEndTime           string    `json:"daily_end_time" validate:"required"`
	TriggerType            string    `json:"trigger_type" validate:"required,oneof=time habit both"`
	TriggerTime            string    `json:"trigger_time,omitempty"`
	TriggerHabit           string    `json:"trigger_habit,omitempty" validate:"omitempty,max=1000"`
	Tone                   string    `json:"tone" validate:"required,max=255"`
	BuddyName              string    `json:"buddy_name" validate:"required,max=255"`
	Mantra                 string    `json:"mantra,omitempty" validate:"omitempty,max=1000"`
	IsDemo                 bool      `json:"is_demo"`
	MondayHour1Enabled     bool      `json:"monday_hour_1_enabled"`
	MondayHour1DayOfWeek   string    `json:"monday_hour_1_day_of_week,omitempty" validate:"omitempty,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	MondayHour1Time        string    `json:"monday_hour_1_time,omitempty"`
	Goal                   DummyGoal `json:"goal" validate:"required"`
}
