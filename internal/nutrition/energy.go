package nutrition

import "github.com/JonnyWalker81/nutrisense/backend/internal/models"

// FallbackOptimum is used when the profile lacks the anthropometrics for a BMR
const FallbackOptimum = 2000.0

// Per-minute training cost per kg of body weight, by heart-rate zone
var zoneKcalPerKgMin = [4]float64{0.04, 0.07, 0.10, 0.13}

const stepKcalPerKg = 0.0005

// BMR returns the Mifflin-St Jeor basal metabolic rate, or 0 if the
// profile does not carry weight, height and age.
func BMR(p models.Profile) float64 {
	if p.Weight <= 0 || p.Height <= 0 || p.Age <= 0 {
		return 0
	}
	base := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	if p.Gender == "female" {
		return base - 161
	}
	return base + 5
}

// TrainingKcal estimates energy spent in the day's workouts
func TrainingKcal(day models.DayRecord, weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	total := 0.0
	for _, t := range day.Trainings {
		zoneSum := 0
		for i, z := range t.Zones {
			total += float64(z) * zoneKcalPerKgMin[i] * weight
			zoneSum += z
		}
		if zoneSum == 0 && t.DurationMin > 0 {
			total += float64(t.DurationMin) * zoneKcalPerKgMin[1] * weight
		}
	}
	return total
}

// StepsKcal estimates energy spent walking
func StepsKcal(steps int, weight float64) float64 {
	if steps <= 0 || weight <= 0 {
		return 0
	}
	return float64(steps) * stepKcalPerKg * weight
}

// TDEE returns total daily energy expenditure for a day
func TDEE(p models.Profile, day models.DayRecord) float64 {
	p = p.WithDefaults()
	bmr := BMR(p)
	if bmr == 0 {
		return 0
	}
	return bmr*p.ActivityFactor + TrainingKcal(day, p.Weight) + StepsKcal(day.Steps, p.Weight)
}

// CalorieOptimum returns the day's energy target: TDEE adjusted by the
// profile's deficit/surplus percentage.
func CalorieOptimum(p models.Profile, day models.DayRecord) float64 {
	tdee := TDEE(p, day)
	if tdee == 0 {
		return FallbackOptimum
	}
	return tdee * (1 + p.DeficitPctTarget/100)
}
