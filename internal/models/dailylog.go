package models

import "time"

// DailyLog представляет одну запись журнала: сообщение одного слота одного
// прогона симуляции. Запись создаётся оркестратором после обработки слота
// и после вставки никогда не изменяется.
type DailyLog struct {
	ID             int       `json:"id"`
	UserUID        string    `json:"user_id"`
	Date           time.Time `json:"date"`
	MessageType    string    `json:"message_type"`
	MessageContent string    `json:"message_content"`
	AIPromptUsed   string    `json:"ai_prompt_used"`
	SentAt         time.Time `json:"sent_at"`
	IsSent         bool      `json:"is_sent"` // true, если доставка удалась хотя бы по одному каналу
}

// UserWithGoal объединяет пользователя и его первую цель —
// снимок, который читают обработчики и оркестратор симуляции.
type UserWithGoal struct {
	User User `json:"user"`
	Goal Goal `json:"goal"`
}
