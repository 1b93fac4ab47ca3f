package advice

import (
	"fmt"
	"sort"

	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Aggregator runs the rule modules and turns their union into a ranked list:
// deduplicate, filter by time window, adapt to mood, then sort by priority.
// It keeps no state between calls.
type Aggregator struct {
	cfg     Config
	modules []RuleModule
	log     logger.Logger
}

// NewAggregator creates an aggregator over modules, in registration order
func NewAggregator(cfg Config, modules []RuleModule, log logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Default()
	}
	return &Aggregator{cfg: cfg, modules: modules, log: log}
}

// Modules returns the registered module names in order
func (a *Aggregator) Modules() []string {
	names := make([]string, len(a.modules))
	for i, m := range a.modules {
		names[i] = m.Name()
	}
	return names
}

// Generate produces the full ranked list for actx, with reminder cooldowns
// evaluated at actx.Now and nothing shown before.
func (a *Aggregator) Generate(actx Context) []models.Candidate {
	return a.GenerateWith(actx, NewHelpers(actx.Now, nil, a.cfg.ReminderCooldown))
}

// GenerateWith is Generate with explicit helpers
func (a *Aggregator) GenerateWith(actx Context, h Helpers) []models.Candidate {
	if h.Now.IsZero() {
		h.Now = actx.Now
	}
	if h.Cooldown == 0 {
		h.Cooldown = a.cfg.ReminderCooldown
	}

	var all []models.Candidate
	for _, m := range a.modules {
		all = append(all, a.run(m, actx, h)...)
	}

	all = Deduplicate(all)
	all = FilterByTimeRestrictions(all, actx.Hour)

	adapted := make([]models.Candidate, 0, len(all))
	for _, c := range all {
		text, ok := adaptTextToMood(c.Text, actx.MoodLevel, c.Type, a.cfg.LowMoodCutoff, a.cfg.HighMoodCutoff)
		if !ok {
			continue
		}
		c.Text = text
		adapted = append(adapted, c)
	}

	sort.SliceStable(adapted, func(i, j int) bool {
		return adapted[i].Priority > adapted[j].Priority
	})
	return adapted
}

// run calls one module, containing any panic so the other modules still contribute
func (a *Aggregator) run(m RuleModule, actx Context, h Helpers) (out []models.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("advice module panicked",
				logger.String("module", m.Name()),
				logger.String("panic", fmt.Sprint(r)),
			)
			out = nil
		}
	}()
	return m.Generate(actx, h)
}
