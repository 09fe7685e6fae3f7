// Package schedule вычисляет номинальные времена отправки сообщений
// внутри дневного окна пользователя. Вся арифметика ведётся в минутах
// от полуночи, результаты привязываются к дате опорного момента.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay   = 24 * 60
	windDownLeadMin = 90 // wind-down наступает за полтора часа до конца окна
)

// DefaultWeeklyClock — время еженедельного сообщения, если оно не задано.
const DefaultWeeklyClock = "18:00"

// Slots содержит вычисленные времена четырёх дневных слотов,
// привязанные к одной опорной дате.
type Slots struct {
	Morning  time.Time
	Trigger  time.Time
	Midday   time.Time
	WindDown time.Time
}

// ParseClock разбирает время вида "15:04" или "15:04:05" в минуты от полуночи.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// Compute вычисляет времена слотов для дневного окна [startMin, endMin]
// и времени триггера triggerMin (минуты от полуночи). Если время триггера
// не задано, вызывающий передаёт startMin.
//
// Midday — середина отрезка между началом окна и wind-down. Если конец окна
// численно меньше начала (окно через полночь), к концу прибавляются сутки
// перед вычислением середины, результат приводится по модулю суток.
func Compute(ref time.Time, startMin, endMin, triggerMin int) Slots {
	windDown := endMin - windDownLeadMin

	adjustedEnd := endMin
	if adjustedEnd < startMin {
		adjustedEnd += minutesPerDay
	}
	midday := (startMin + adjustedEnd - windDownLeadMin) / 2 % minutesPerDay

	return Slots{
		Morning:  At(ref, startMin),
		Trigger:  At(ref, triggerMin),
		Midday:   At(ref, midday),
		WindDown: At(ref, (windDown+minutesPerDay)%minutesPerDay),
	}
}

// At возвращает момент на дате ref с временем суток minutes (минуты от полуночи).
func At(ref time.Time, minutes int) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), minutes/60, minutes%60, 0, 0, ref.Location())
}

// WeeklyAt возвращает время еженедельного сообщения на дате ref.
// Пустое или некорректное значение clock заменяется на DefaultWeeklyClock.
func WeeklyAt(ref time.Time, clock string) time.Time {
	mins, err := ParseClock(clock)
	if err != nil {
		mins, _ = ParseClock(DefaultWeeklyClock)
	}
	return At(ref, mins)
}

// Label12h форматирует момент в 12-часовую метку без ведущего нуля, например "9:00 AM".
func Label12h(t time.Time) string {
	return t.Format("3:04 PM")
}
