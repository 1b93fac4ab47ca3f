package advice

import (
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Windows are the named time-of-day bands advice can be restricted to
type Windows struct {
	Morning   models.TimeWindow `mapstructure:"morning"`
	Lunch     models.TimeWindow `mapstructure:"lunch"`
	Afternoon models.TimeWindow `mapstructure:"afternoon"`
	Evening   models.TimeWindow `mapstructure:"evening"`
	Night     models.TimeWindow `mapstructure:"night"`
}

// Config holds every threshold used by the rule modules and the aggregator
type Config struct {
	// Calorie balance ratios. Excess is against the optimum, deficit against the display optimum
	KcalExcessCritical  float64 `mapstructure:"kcal_excess_critical"`
	KcalExcessMild      float64 `mapstructure:"kcal_excess_mild"`
	KcalOnTrack         float64 `mapstructure:"kcal_on_track"`
	KcalDeficitCritical float64 `mapstructure:"kcal_deficit_critical"`
	KcalDeficitMild     float64 `mapstructure:"kcal_deficit_mild"`
	RefeedCeiling       float64 `mapstructure:"refeed_ceiling"`
	CaloricDebtNotice   float64 `mapstructure:"caloric_debt_notice"` // kcal

	// Macro ratios against absolute norms
	ProteinLow      float64 `mapstructure:"protein_low"`
	ProteinSources  float64 `mapstructure:"protein_sources"`
	FiberLow        float64 `mapstructure:"fiber_low"`
	FiberSources    float64 `mapstructure:"fiber_sources"`
	SugarHigh       float64 `mapstructure:"sugar_high"`
	SugarSwap       float64 `mapstructure:"sugar_swap"`
	BadFatHigh      float64 `mapstructure:"bad_fat_high"`
	HarmHighFactor  float64 `mapstructure:"harm_high_factor"`
	GIHigh          float64 `mapstructure:"gi_high"`
	GLGood          float64 `mapstructure:"gl_good"` // daily glycemic load bands
	GLHigh          float64 `mapstructure:"gl_high"`
	AfternoonHour   int     `mapstructure:"afternoon_hour"` // macro checks start after this hour
	EveningHour     int     `mapstructure:"evening_hour"`
	LateCheckHour   int     `mapstructure:"late_check_hour"`
	LateDinnerHour  int     `mapstructure:"late_dinner_hour"`
	MealGapHours    float64 `mapstructure:"meal_gap_hours"`
	EveningKcalHigh float64 `mapstructure:"evening_kcal_high"` // share of kcal after 17:00

	// Hydration
	WaterEveningLow    float64 `mapstructure:"water_evening_low"`
	WaterReminderHours float64 `mapstructure:"water_reminder_hours"`
	WaterReminderFrom  int     `mapstructure:"water_reminder_from"`
	WaterReminderTo    int     `mapstructure:"water_reminder_to"`
	SuperHydrationMl   float64 `mapstructure:"super_hydration_ml"`

	// Training
	PostTrainingWindowMin int `mapstructure:"post_training_window_min"`
	RecoveryWindowMin     int `mapstructure:"recovery_window_min"`

	// Emotional state, on the 1-10 scale
	LowMoodCutoff  float64 `mapstructure:"low_mood_cutoff"`
	HighMoodCutoff float64 `mapstructure:"high_mood_cutoff"`
	HighStress     float64 `mapstructure:"high_stress"`
	LowWellbeing   float64 `mapstructure:"low_wellbeing"`
	PoorSleepHours float64 `mapstructure:"poor_sleep_hours"`
	GoodSleepHours float64 `mapstructure:"good_sleep_hours"`

	// Meal timing
	CircadianBands      []CircadianBand `mapstructure:"circadian_bands"`
	CircadianGoodScore  float64         `mapstructure:"circadian_good_score"`
	CircadianPoorScore  float64         `mapstructure:"circadian_poor_score"`
	EveningStartHour    int             `mapstructure:"evening_start_hour"` // start of the back-loaded share
	EveningKcalMin      float64         `mapstructure:"evening_kcal_min"`   // day total before the share is judged
	MealGapFromHour     int             `mapstructure:"meal_gap_from_hour"`
	BreakfastBeforeHour int             `mapstructure:"breakfast_before_hour"`
	BreakfastProtein    float64         `mapstructure:"breakfast_protein"` // g
	EmptyDayHour        int             `mapstructure:"empty_day_hour"`

	ReminderCooldown time.Duration `mapstructure:"reminder_cooldown"`
	MaxItems         int           `mapstructure:"max_items"`

	Windows Windows `mapstructure:"windows"`
}

// DefaultConfig returns the calibrated thresholds
func DefaultConfig() Config {
	return Config{
		KcalExcessCritical:  1.15,
		KcalExcessMild:      1.05,
		KcalOnTrack:         0.90,
		KcalDeficitCritical: 0.50,
		KcalDeficitMild:     0.75,
		RefeedCeiling:       1.35,
		CaloricDebtNotice:   200,

		ProteinLow:      0.6,
		ProteinSources:  0.8,
		FiberLow:        0.5,
		FiberSources:    0.8,
		SugarHigh:       1.0,
		SugarSwap:       0.8,
		BadFatHigh:      1.1,
		HarmHighFactor:  2,
		GIHigh:          70,
		GLGood:          80,
		GLHigh:          120,
		AfternoonHour:   16,
		EveningHour:     18,
		LateCheckHour:   20,
		LateDinnerHour:  21,
		MealGapHours:    5,
		EveningKcalHigh: 0.5,

		WaterEveningLow:    0.5,
		WaterReminderHours: 2,
		WaterReminderFrom:  10,
		WaterReminderTo:    21,
		SuperHydrationMl:   2500,

		PostTrainingWindowMin: 120,
		RecoveryWindowMin:     240,

		LowMoodCutoff:  4,
		HighMoodCutoff: 8,
		HighStress:     7,
		LowWellbeing:   4,
		PoorSleepHours: 6,
		GoodSleepHours: 7.5,

		CircadianBands:      DefaultCircadianBands(),
		CircadianGoodScore:  1.0,
		CircadianPoorScore:  0.9,
		EveningStartHour:    17,
		EveningKcalMin:      800,
		MealGapFromHour:     9,
		BreakfastBeforeHour: 10,
		BreakfastProtein:    20,
		EmptyDayHour:        11,

		ReminderCooldown: 2 * time.Second,
		MaxItems:         10,

		Windows: Windows{
			Morning:   models.TimeWindow{Label: "morning", StartHour: 5, EndHour: 12},
			Lunch:     models.TimeWindow{Label: "lunch", StartHour: 11, EndHour: 15},
			Afternoon: models.TimeWindow{Label: "afternoon", StartHour: 12, EndHour: 18},
			Evening:   models.TimeWindow{Label: "evening", StartHour: 17, EndHour: 23},
			Night:     models.TimeWindow{Label: "night", StartHour: 22, EndHour: 5},
		},
	}
}

// CircadianBand weights calories by when they are eaten
type CircadianBand struct {
	Name        string            `mapstructure:"name"`
	Window      models.TimeWindow `mapstructure:"window"`
	Multiplier  float64           `mapstructure:"multiplier"`
	Description string            `mapstructure:"description"`
}

// DefaultCircadianBands covers the whole day: morning, afternoon, evening, night
func DefaultCircadianBands() []CircadianBand {
	return []CircadianBand{
		{"morning", models.TimeWindow{Label: "morning", StartHour: 6, EndHour: 11}, 1.1, "Morning meals are used most efficiently"},
		{"afternoon", models.TimeWindow{Label: "afternoon", StartHour: 11, EndHour: 17}, 1.0, "Midday meals match your natural rhythm"},
		{"evening", models.TimeWindow{Label: "evening", StartHour: 17, EndHour: 22}, 0.9, "Evening calories are processed more slowly"},
		{"night", models.TimeWindow{Label: "night", StartHour: 22, EndHour: 6}, 0.7, "Night eating disrupts sleep and metabolism"},
	}
}
