package models

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for DayRecord.Date
const DateLayout = "2006-01-02"

// DayRecord represents one calendar day of logged data
type DayRecord struct {
	Date         string       `json:"date"`
	Meals        []Meal       `json:"meals"`
	Trainings    []Training   `json:"trainings,omitempty"`
	Steps        int          `json:"steps"`
	WaterMl      float64      `json:"water_ml"`
	WaterLog     []WaterEntry `json:"water_log,omitempty"`
	SleepStart   string       `json:"sleep_start,omitempty"` // HH:MM, evening before
	SleepEnd     string       `json:"sleep_end,omitempty"`   // HH:MM, wake-up time
	SleepQuality float64      `json:"sleep_quality,omitempty"`
	Mood         float64      `json:"mood,omitempty"`      // 1-10, 0 = not recorded
	Wellbeing    float64      `json:"wellbeing,omitempty"` // 1-10, 0 = not recorded
	Stress       float64      `json:"stress,omitempty"`    // 1-10, 0 = not recorded
	IsRefeedDay  bool         `json:"is_refeed_day"`

	// Manual overrides entered by the user
	KcalOverride  *float64 `json:"kcal_override,omitempty"`
	WaterOverride bool     `json:"water_override,omitempty"`
}

// Meal is one eating occasion within a day
type Meal struct {
	Time  string     `json:"time"` // HH:MM
	Name  string     `json:"name,omitempty"`
	Items []MealItem `json:"items"`
}

// MealItem is one logged food entry
type MealItem struct {
	ProductID string  `json:"product_id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Grams     float64 `json:"grams"`
}

// Training is one logged workout
type Training struct {
	Type        string `json:"type,omitempty"`
	Time        string `json:"time"` // HH:MM start
	DurationMin int    `json:"duration_min"`
	Zones       [4]int `json:"zones"` // minutes per heart-rate zone
}

// WaterEntry is one recorded drink
type WaterEntry struct {
	Time string  `json:"time"` // HH:MM
	Ml   float64 `json:"ml"`
}

// HasData reports whether the record is structurally complete. A record without
// a meals array is treated as "no data for that day".
func (d DayRecord) HasData() bool {
	if d.Meals == nil {
		return false
	}
	_, err := time.Parse(DateLayout, d.Date)
	return err == nil
}

// ParsedDate returns the record date, or the zero time if it does not parse
func (d DayRecord) ParsedDate() time.Time {
	t, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MealCount returns the number of meals that contain at least one item
func (d DayRecord) MealCount() int {
	n := 0
	for _, m := range d.Meals {
		if len(m.Items) > 0 {
			n++
		}
	}
	return n
}

// TrainingMinutes returns the total logged training time
func (d DayRecord) TrainingMinutes() int {
	total := 0
	for _, t := range d.Trainings {
		total += t.Minutes()
	}
	return total
}

// Minutes returns the zone sum, falling back to DurationMin when zones are empty
func (t Training) Minutes() int {
	sum := 0
	for _, z := range t.Zones {
		sum += z
	}
	if sum == 0 {
		return t.DurationMin
	}
	return sum
}

// SleepHours returns the sleep duration derived from the sleep window.
// ok is false when either end of the window is missing.
func (d DayRecord) SleepHours() (hours float64, ok bool) {
	start, okStart := ParseClock(d.SleepStart)
	end, okEnd := ParseClock(d.SleepEnd)
	if !okStart || !okEnd {
		return 0, false
	}
	diff := end - start
	if diff <= 0 {
		diff += 24 * 60
	}
	return float64(diff) / 60, true
}

// ParseClock parses "HH:MM" into minutes after midnight
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	if h == 24 {
		h = 0
	}
	return h*60 + m, true
}

// Product is a nutrient profile per 100g
type Product struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Simple   float64 `json:"simple" yaml:"simple"`
	Complex  float64 `json:"complex" yaml:"complex"`
	Protein  float64 `json:"protein" yaml:"protein"`
	BadFat   float64 `json:"bad_fat" yaml:"bad_fat"`
	GoodFat  float64 `json:"good_fat" yaml:"good_fat"`
	TransFat float64 `json:"trans_fat" yaml:"trans_fat"`
	Fiber    float64 `json:"fiber" yaml:"fiber"`
	GI       float64 `json:"gi" yaml:"gi"`
	Harm     float64 `json:"harm" yaml:"harm"`
}

// Carbs returns total carbohydrates per 100g
func (p Product) Carbs() float64 { return p.Simple + p.Complex }

// Fat returns total fat per 100g
func (p Product) Fat() float64 { return p.BadFat + p.GoodFat + p.TransFat }

// ProductIndex is a read-only lookup of products by id and by normalized name
type ProductIndex struct {
	ByID   map[string]Product `json:"-"`
	ByName map[string]Product `json:"-"`
}

// Lookup resolves a meal item: by id (case-insensitive) first, then by normalized name
func (idx *ProductIndex) Lookup(item MealItem) (Product, bool) {
	if idx == nil {
		return Product{}, false
	}
	if item.ProductID != "" {
		if p, ok := idx.ByID[strings.ToLower(strings.TrimSpace(item.ProductID))]; ok {
			return p, true
		}
	}
	if item.Name != "" {
		if p, ok := idx.ByName[NormalizeName(item.Name)]; ok {
			return p, true
		}
	}
	return Product{}, false
}

// Len returns the number of products indexed by id
func (idx *ProductIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.ByID)
}

// NormalizeName lower-cases, trims and collapses inner whitespace
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Profile holds the user attributes the engine needs
type Profile struct {
	UserID           string       `json:"user_id"`
	Weight           float64      `json:"weight"` // kg
	Height           float64      `json:"height"` // cm
	Age              int          `json:"age"`
	Gender           string       `json:"gender"` // "male" / "female"
	ActivityFactor   float64      `json:"activity_factor,omitempty"`
	DeficitPctTarget float64      `json:"deficit_pct_target"` // negative = deficit
	WaterGoalMl      float64      `json:"water_goal_ml,omitempty"`
	StepsGoal        int          `json:"steps_goal,omitempty"`
	Birthday         string       `json:"birthday,omitempty"` // YYYY-MM-DD
	Norms            NormsProfile `json:"norms"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// NormsProfile holds per-user percentage targets
type NormsProfile struct {
	CarbsPct     float64 `json:"carbs_pct"`      // % of kcal
	ProteinPct   float64 `json:"protein_pct"`    // % of kcal
	SimplePct    float64 `json:"simple_pct"`     // % of carbs
	BadFatPct    float64 `json:"bad_fat_pct"`    // % of fat
	TransFatPct  float64 `json:"trans_fat_pct"`  // % of fat
	FiberPer1000 float64 `json:"fiber_per_1000"` // g per 1000 kcal
	GIPct        float64 `json:"gi_pct"`
	HarmPct      float64 `json:"harm_pct"`
}

// Neutral defaults applied to absent profile fields
const (
	DefaultActivityFactor = 1.2
	DefaultStepsGoal      = 10000
	DefaultCarbsPct       = 50
	DefaultProteinPct     = 25
	DefaultSimplePct      = 30
	DefaultBadFatPct      = 30
	DefaultTransFatPct    = 1
	DefaultFiberPer1000   = 14
	DefaultGIPct          = 55
	DefaultHarmPct        = 2
)

// WithDefaults returns a copy with every absent field set to its neutral default
func (p Profile) WithDefaults() Profile {
	if p.ActivityFactor <= 0 {
		p.ActivityFactor = DefaultActivityFactor
	}
	if p.StepsGoal <= 0 {
		p.StepsGoal = DefaultStepsGoal
	}
	p.Norms = p.Norms.WithDefaults()
	return p
}

// WithDefaults fills zero-valued targets with neutral defaults
func (n NormsProfile) WithDefaults() NormsProfile {
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&n.CarbsPct, DefaultCarbsPct)
	fill(&n.ProteinPct, DefaultProteinPct)
	fill(&n.SimplePct, DefaultSimplePct)
	fill(&n.BadFatPct, DefaultBadFatPct)
	fill(&n.TransFatPct, DefaultTransFatPct)
	fill(&n.FiberPer1000, DefaultFiberPer1000)
	fill(&n.GIPct, DefaultGIPct)
	fill(&n.HarmPct, DefaultHarmPct)
	return n
}

// DayTotals holds derived daily sums
type DayTotals struct {
	Kcal     float64 `json:"kcal"`
	Carbs    float64 `json:"carbs"`
	Simple   float64 `json:"simple"`
	Complex  float64 `json:"complex"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	BadFat   float64 `json:"bad_fat"`
	GoodFat  float64 `json:"good_fat"`
	TransFat float64 `json:"trans_fat"`
	Fiber    float64 `json:"fiber"`
	GI       float64 `json:"gi"`   // carb-weighted average
	Harm     float64 `json:"harm"` // gram-weighted average
	GL       float64 `json:"gl"`   // glycemic load
	Grams    float64 `json:"grams"`
}

// NormAbs holds absolute daily targets derived from the calorie optimum
type NormAbs struct {
	Kcal     float64 `json:"kcal"`
	Carbs    float64 `json:"carbs"`
	Simple   float64 `json:"simple"`
	Complex  float64 `json:"complex"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	BadFat   float64 `json:"bad_fat"`
	GoodFat  float64 `json:"good_fat"`
	TransFat float64 `json:"trans_fat"`
	Fiber    float64 `json:"fiber"`
	GI       float64 `json:"gi"`
	Harm     float64 `json:"harm"`
}

// UpdateProfileRequest is a partial profile update.
// Nullable fields distinguish "clear" from "leave unchanged".
type UpdateProfileRequest struct {
	Weight           *float64       `json:"weight" binding:"omitempty,gt=0,lt=500"`
	Height           *float64       `json:"height" binding:"omitempty,gt=0,lt=300"`
	Age              *int           `json:"age" binding:"omitempty,gt=0,lt=130"`
	Gender           *string        `json:"gender" binding:"omitempty,oneof=male female"`
	ActivityFactor   *float64       `json:"activity_factor" binding:"omitempty,gte=1,lte=2.5"`
	DeficitPctTarget *float64       `json:"deficit_pct_target" binding:"omitempty,gte=-50,lte=50"`
	WaterGoalMl      NullableFloat  `json:"water_goal_ml"`
	StepsGoal        *int           `json:"steps_goal" binding:"omitempty,gte=0"`
	Birthday         NullableString `json:"birthday"`
	Norms            *NormsProfile  `json:"norms"`
}
