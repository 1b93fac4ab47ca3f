package advice

import "github.com/JonnyWalker81/nutrisense/backend/internal/models"

// RuleModule proposes advice candidates for a context. Implementations must
// not mutate the context and return nil when the fields they need are absent.
type RuleModule interface {
	Name() string
	Generate(actx Context, h Helpers) []models.Candidate
}

// DefaultModules returns the built-in modules in registration order.
// Registration order breaks priority ties in the final ranking.
func DefaultModules(cfg Config) []RuleModule {
	return []RuleModule{
		NewHydrationModule(cfg),
		NewNutritionModule(cfg),
		NewTimingModule(cfg),
		NewTrainingModule(cfg),
		NewEmotionalModule(cfg),
		NewMiscModule(cfg),
	}
}

// candidate builds an item; triggers default to tab_open
func candidate(id, icon string, typ models.AdviceType, cat models.AdviceCategory, priority int, text, details string, triggers ...string) models.Candidate {
	if len(triggers) == 0 {
		triggers = []string{models.TriggerTabOpen}
	}
	return models.Candidate{
		ID:       id,
		Icon:     icon,
		Text:     text,
		Details:  details,
		Type:     typ,
		Priority: priority,
		Category: cat,
		Triggers: triggers,
	}
}

func windowed(c models.Candidate, w models.TimeWindow) models.Candidate {
	c.Window = &w
	return c
}
