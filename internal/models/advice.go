package models

// AdviceType is the tone of an advice item
type AdviceType string

const (
	AdviceTypeTip         AdviceType = "tip"
	AdviceTypeWarning     AdviceType = "warning"
	AdviceTypeAchievement AdviceType = "achievement"
	AdviceTypeInsight     AdviceType = "insight"
)

// AdviceCategory groups advice items by domain
type AdviceCategory string

const (
	CategoryHydration   AdviceCategory = "hydration"
	CategoryNutrition   AdviceCategory = "nutrition"
	CategoryTiming      AdviceCategory = "timing"
	CategoryTraining    AdviceCategory = "training"
	CategoryEmotional   AdviceCategory = "emotional"
	CategoryAchievement AdviceCategory = "achievement"
	CategoryLifestyle   AdviceCategory = "lifestyle"
	CategoryInsight     AdviceCategory = "insight"
)

// Trigger events an advice item reacts to
const (
	TriggerTabOpen      = "tab_open"
	TriggerProductAdded = "product_added"
	TriggerWaterAdded   = "water_added"
	TriggerTraining     = "training_added"
	TriggerMoodLogged   = "mood_logged"
)

// TimeWindow restricts an advice item to a time-of-day band.
// The band is [StartHour, EndHour); it wraps midnight when StartHour > EndHour.
type TimeWindow struct {
	Label     string `json:"label" mapstructure:"label"`
	StartHour int    `json:"start_hour" mapstructure:"start_hour"`
	EndHour   int    `json:"end_hour" mapstructure:"end_hour"`
}

// Contains reports whether hour (0-23) falls inside the window
func (w TimeWindow) Contains(hour int) bool {
	if w.StartHour == w.EndHour {
		return true
	}
	if w.StartHour < w.EndHour {
		return hour >= w.StartHour && hour < w.EndHour
	}
	return hour >= w.StartHour || hour < w.EndHour
}

// Candidate is one potential piece of advice
type Candidate struct {
	ID       string         `json:"id"`
	Icon     string         `json:"icon"`
	Text     string         `json:"text"`
	Details  string         `json:"details,omitempty"`
	Type     AdviceType     `json:"type"`
	Priority int            `json:"priority"`
	Category AdviceCategory `json:"category"`
	Triggers []string       `json:"triggers"`
	TTLms    int            `json:"ttl_ms"`
	Window   *TimeWindow    `json:"window,omitempty"`
}

// AdviceResponse is the API response for generated advice
type AdviceResponse struct {
	Date           string      `json:"date"`
	Advices        []Candidate `json:"advices"`
	Total          int         `json:"total"` // before the limit was applied
	Hour           int         `json:"hour"`
	KcalPct        float64     `json:"kcal_pct"`
	Streak         int         `json:"streak"`
	Tone           string      `json:"tone"`
	SpecialDay     string      `json:"special_day,omitempty"`
	EmotionalState string      `json:"emotional_state"`
}

// ProductCatalog is the API response for the resolved product list
type ProductCatalog struct {
	Products []Product `json:"products"`
	Source   string    `json:"source"`
	Count    int       `json:"count"`
}
