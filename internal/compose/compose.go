// Package compose собирает промпты для генерации текста и итоговые тела
// сообщений по видам слотов. Каждый вид слота несёт типизированный набор
// параметров шаблона: заголовок, эмодзи и функцию построения промпта.
package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizzytext/goalcontract/internal/models"
)

// Kind — вид слота сообщения внутри одного дня.
type Kind string

// Виды слотов в фиксированном порядке обработки.
const (
	KindMorning  Kind = "morning"
	KindTrigger  Kind = "trigger"
	KindMidday   Kind = "midday"
	KindWindDown Kind = "wind_down"
	KindWeekly   Kind = "weekly_override"
)

// wordContract — обязательное требование к генератору, добавляется
// к каждому промпту, даже если базовый шаблон его не содержит.
const wordContract = "Keep it between 30 to 40 words. Do not repeat their name in the body."

// promptParams — параметры, которыми параметризуются шаблоны промптов.
type promptParams struct {
	Tone      string
	BuddyName string
	GoalText  string
	Mantra    string
	TriggerBy string
}

// template — типизированный набор параметров шаблона одного вида слота.
type template struct {
	label       string
	headerSigil string
	signSigil   string
	prompt      func(p promptParams) string
}

var templates = map[Kind]template{
	KindMorning: {
		label:       "RISE N SHINE",
		headerSigil: "🌄",
		signSigil:   "📜🤝",
		prompt: func(p promptParams) string {
			return fmt.Sprintf(
				"Write a short motivational message in the tone of '%s'. "+
					"Avoid greetings or repeating their name. Their buddy is '%s'. "+
					"Their current goal is: '%s'.",
				p.Tone, p.BuddyName, p.GoalText)
		},
	},
	KindTrigger: {
		label:       "TRIGGER",
		headerSigil: "🔔",
		signSigil:   "🔔",
		prompt: func(p promptParams) string {
			return fmt.Sprintf(
				"After this: '%s', their day begins. Remind them why they started their goal: '%s'. "+
					"Use the tone '%s'. Make it action-oriented, and sign off as '%s'.",
				p.TriggerBy, p.GoalText, p.Tone, p.BuddyName)
		},
	},
	KindMidday: {
		label:       "MIDDAY PUSH",
		headerSigil: "👽",
		signSigil:   "💪",
		prompt: func(p promptParams) string {
			return fmt.Sprintf(
				"Write a concise motivational push for a user working toward '%s'. "+
					"Mantra: '%s'. Tone: '%s'. Sign as '%s'.",
				p.GoalText, p.Mantra, p.Tone, p.BuddyName)
		},
	},
	KindWindDown: {
		label:       "WINDDOWN",
		headerSigil: "🌚",
		signSigil:   "🌙",
		prompt: func(p promptParams) string {
			return fmt.Sprintf(
				"Write a reflective evening message using a '%s' tone. "+
					"Ask user to rate day 1-10 and share a win. Goal: '%s'. Sign as '%s'.",
				p.Tone, p.GoalText, p.BuddyName)
		},
	},
	KindWeekly: {
		label:       "MONDAY HOUR",
		headerSigil: "🗓️",
		signSigil:   "✨",
		prompt: func(p promptParams) string {
			return fmt.Sprintf(
				"Write a weekly check-in message in the tone of '%s'. "+
					"Ask them to review last week's progress toward '%s' and pick one focus for the coming week. "+
					"Sign as '%s'.",
				p.Tone, p.GoalText, p.BuddyName)
		},
	},
}

// DailyKinds — фиксированный порядок дневных слотов. Еженедельный слот
// добавляется в конец, только когда он включён у пользователя.
func DailyKinds(weeklyEnabled bool) []Kind {
	kinds := []Kind{KindMorning, KindTrigger, KindMidday, KindWindDown}
	if weeklyEnabled {
		kinds = append(kinds, KindWeekly)
	}
	return kinds
}

// Label возвращает человекочитаемую метку вида слота, используется
// в заголовке тела и в теме письма.
func Label(k Kind) string {
	return templates[k].label
}

// BuildPrompt собирает промпт генерации для слота. Требование о 30-40 словах
// и запрете повторять имя пользователя добавляется всегда.
func BuildPrompt(k Kind, user *models.User, goal *models.Goal) string {
	p := promptParams{
		Tone:      user.Tone,
		BuddyName: user.BuddyName,
		GoalText:  goal.Description,
		Mantra:    user.Mantra,
		TriggerBy: triggerAnchor(user),
	}
	if p.Mantra == "" {
		p.Mantra = "no mantra set"
	}

	prompt := templates[k].prompt(p)
	if !strings.Contains(prompt, "30 to 40 words") {
		prompt = prompt + " " + wordContract
	}
	return prompt
}

// triggerAnchor возвращает текст привычки-триггера или, если привычка
// не задана, формулировку от времени триггера.
func triggerAnchor(user *models.User) string {
	if user.TriggerHabit != "" {
		return user.TriggerHabit
	}
	if user.TriggerTime != "" {
		if t, err := time.Parse("15:04", normalizeClock(user.TriggerTime)); err == nil {
			return fmt.Sprintf("the clock hits %s", t.Format("3:04 PM"))
		}
	}
	return "their usual routine"
}

func normalizeClock(s string) string {
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		return parts[0] + ":" + parts[1]
	}
	if len(s) == 4 { // "7:05"
		return "0" + s
	}
	return s
}

// RenderBody оборачивает сгенерированный текст в оформление слота:
// заголовок, для триггера — счётчик оставшихся дней, метку времени
// отправки и подпись бадди.
//
// Счётчик добавляется только когда у цели задан срок и до него осталось
// неотрицательное число календарных дней относительно даты now.
func RenderBody(k Kind, text string, user *models.User, goal *models.Goal, scheduledLabel string, now time.Time) string {
	tpl := templates[k]

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s %s ===\n\n%s", tpl.label, tpl.headerSigil, strings.TrimSpace(text))

	if k == KindTrigger {
		if days, ok := DaysRemaining(goal, now); ok {
			fmt.Fprintf(&b, "\n\n⏳ %d days until %s", days, goal.Description)
		}
	}

	fmt.Fprintf(&b, "\n\n🕐 Scheduled for %s", scheduledLabel)
	fmt.Fprintf(&b, "\n\n– %s %s", user.BuddyName, tpl.signSigil)
	return b.String()
}

// DaysRemaining считает календарные дни от даты now до срока цели.
// Возвращает false, если срок не задан или уже прошёл.
func DaysRemaining(goal *models.Goal, now time.Time) (int, bool) {
	if goal.TargetDate == nil {
		return 0, false
	}
	target := *goal.TargetDate
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)

	days := int(targetDay.Sub(today).Hours() / 24)
	if days < 0 {
		return 0, false
	}
	return days, true
}
