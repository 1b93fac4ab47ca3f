package advice

import (
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// defaultWakeMinutes is assumed as the day start when no sleep end is logged
const defaultWakeMinutes = 7 * 60

// Helpers carries the shared, read-only inputs modules may consult besides
// the Context: the evaluation timestamp and when reminders were last shown.
type Helpers struct {
	Now       time.Time
	LastShown map[string]time.Time
	Cooldown  time.Duration
}

// NewHelpers returns helpers for one evaluation at now
func NewHelpers(now time.Time, lastShown map[string]time.Time, cooldown time.Duration) Helpers {
	return Helpers{Now: now, LastShown: lastShown, Cooldown: cooldown}
}

// CooldownElapsed reports whether a reminder may be shown again
func (h Helpers) CooldownElapsed(id string) bool {
	if h.LastShown == nil || h.Cooldown <= 0 {
		return true
	}
	last, ok := h.LastShown[id]
	if !ok {
		return true
	}
	return h.Now.Sub(last) >= h.Cooldown
}

// HoursSinceWater returns the hours between the last logged drink and
// nowMinutes. With no drink logged it counts from wake-up.
func HoursSinceWater(day models.DayRecord, nowMinutes int) float64 {
	last := -1
	for _, w := range day.WaterLog {
		if m, ok := models.ParseClock(w.Time); ok && m <= nowMinutes && m > last {
			last = m
		}
	}
	if last < 0 {
		if wake, ok := models.ParseClock(day.SleepEnd); ok {
			last = wake
		} else {
			last = defaultWakeMinutes
		}
	}
	diff := nowMinutes - last
	if diff < 0 {
		return 0
	}
	return float64(diff) / 60
}

// lastMealMinutes returns the clock time of the latest meal with items
func lastMealMinutes(day models.DayRecord) (int, bool) {
	last, found := -1, false
	for _, m := range day.Meals {
		if len(m.Items) == 0 {
			continue
		}
		if mins, ok := models.ParseClock(m.Time); ok && mins > last {
			last, found = mins, true
		}
	}
	return last, found
}
