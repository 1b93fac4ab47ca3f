package advice

import (
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Miscellaneous advice ids
const (
	IDStreak3            = "streak_3"
	IDStreak7            = "streak_7"
	IDStreak14           = "streak_14"
	IDEmptyDay           = "empty_day"
	IDFirstMeal          = "first_meal_logged"
	IDMondayFreshStart   = "monday_fresh_start"
	IDWeekendWatch       = "weekend_watch"
	IDBirthday           = "birthday"
	IDInsightCorrelation = "insight_correlation"

	// SignalPrefix prefixes advice surfaced from statistics warning signals
	SignalPrefix = "signal_"
)

var streakTiers = []struct {
	id       string
	days     int
	priority int
	icon     string
}{
	{IDStreak14, 14, 50, "🏆"},
	{IDStreak7, 7, 45, "🔥"},
	{IDStreak3, 3, 40, "⭐"},
}

type miscModule struct {
	cfg Config
}

// NewMiscModule creates the streak, calendar and insight module
func NewMiscModule(cfg Config) RuleModule {
	return &miscModule{cfg: cfg}
}

func (m *miscModule) Name() string { return "misc" }

func (m *miscModule) Generate(actx Context, _ Helpers) []models.Candidate {
	var out []models.Candidate

	// Every reached tier is proposed; deduplication keeps the highest
	for _, tier := range streakTiers {
		if actx.CurrentStreak >= tier.days {
			out = append(out, candidate(tier.id, tier.icon, models.AdviceTypeAchievement, models.CategoryAchievement, tier.priority,
				fmt.Sprintf("%d days on target in a row", actx.CurrentStreak),
				"Consistency beats perfection. Keep it going."))
		}
	}

	switch {
	case actx.MealCount == 0 && actx.Hour >= m.cfg.EmptyDayHour:
		out = append(out, candidate(IDEmptyDay, "📝", models.AdviceTypeTip, models.CategoryLifestyle, 59,
			"Nothing logged yet today",
			"Log your meals as you go, it only takes a moment.",
			models.TriggerTabOpen, models.TriggerProductAdded))
	case actx.MealCount == 1:
		out = append(out, candidate(IDFirstMeal, "🥄", models.AdviceTypeAchievement, models.CategoryLifestyle, 28,
			"First meal logged",
			"Good start. Keep logging through the day.",
			models.TriggerProductAdded))
	}

	switch actx.SpecialDay {
	case SpecialNewWeek:
		out = append(out, windowed(candidate(IDMondayFreshStart, "🌱", models.AdviceTypeTip, models.CategoryLifestyle, 27,
			"New week, fresh start",
			"Plan a few meals ahead to make the week easier."), m.cfg.Windows.Morning))
	case SpecialWeekend:
		if hasPattern(actx.Report, "weekend_overeating") {
			out = append(out, candidate(IDWeekendWatch, "🍕", models.AdviceTypeTip, models.CategoryLifestyle, 39,
				"Weekends tend to run over for you",
				"Decide on one treat meal in advance and enjoy it without guilt."))
		}
	case SpecialBirthday:
		out = append(out, candidate(IDBirthday, "🎂", models.AdviceTypeInsight, models.CategoryLifestyle, 41,
			"Happy birthday!",
			"Enjoy today. One day never undoes your progress."))
	}

	if actx.Report != nil {
		for _, w := range actx.Report.Warnings {
			out = append(out, signalCandidate(w))
		}
		if c, ok := correlationInsight(actx.Report); ok {
			out = append(out, c)
		}
	}

	return out
}

// signalCandidate surfaces a statistics warning as advice
func signalCandidate(w models.WarningSignal) models.Candidate {
	typ, priority := models.AdviceTypeTip, 30
	switch w.Severity {
	case models.SeverityHigh:
		typ, priority = models.AdviceTypeWarning, 68
	case models.SeverityMedium:
		typ, priority = models.AdviceTypeWarning, 49
	}
	details := w.Detail
	if w.Action != "" {
		details = fmt.Sprintf("%s. %s.", w.Detail, w.Action)
	}
	return candidate(SignalPrefix+w.Type, "📊", typ, models.CategoryInsight, priority, w.Message, details)
}

// correlationInsight picks the strongest correlation worth mentioning
func correlationInsight(r *models.AnalysisReport) (models.Candidate, bool) {
	for _, c := range r.Correlations {
		if c.Tier == models.ConfidenceLow {
			continue
		}
		return candidate(IDInsightCorrelation, "🔍", models.AdviceTypeInsight, models.CategoryInsight, 26,
			c.Description,
			fmt.Sprintf("Based on %d days of your data.", c.SampleSize)), true
	}
	return models.Candidate{}, false
}

func hasPattern(r *models.AnalysisReport, typ string) bool {
	if r == nil {
		return false
	}
	for _, p := range r.Patterns {
		if p.Type == typ {
			return true
		}
	}
	return false
}
