package models

import "time"

// Goal представляет цель пользователя. TargetDate может быть nil —
// это означает цель без фиксированного срока (estimate или ongoing).
type Goal struct {
	ID          int        `json:"id"`
	UserUID     string     `json:"user_id"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	Progress    string     `json:"progress,omitempty"`
}

// DummyGoal используется для приёма данных цели из JSON-запроса регистрации.
// Дата срока приходит строкой в формате 2006-01-02 при goal_duration_type = fixed.
type DummyGoal struct {
	GoalText          string `json:"goal_text" validate:"required,max=1000"`
	GoalDurationType  string `json:"goal_duration_type" validate:"required,oneof=fixed estimate ongoing"`
	GoalDurationValue string `json:"goal_duration_value,omitempty"`
}
