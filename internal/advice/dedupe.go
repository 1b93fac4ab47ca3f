package advice

import "github.com/JonnyWalker81/nutrisense/backend/internal/models"

// ExclusiveGroups lists advice ids that must never be shown together.
// Only the highest-priority member of a group survives deduplication.
var ExclusiveGroups = map[string][]string{
	"kcal_balance":  {IDKcalExcessCritical, IDKcalExcessMild, IDRefeedDayOK, IDKcalDeficitCritical, IDKcalDeficitMild, IDKcalOnTrack},
	"protein":       {IDProteinLow, IDProteinSources, IDProteinChampion},
	"fiber":         {IDFiberLow, IDFiberSources},
	"sugar":         {IDSimpleCarbsHigh, IDSugarSwap},
	"fat":           {IDTransFatAlert, IDBadFatHigh},
	"glycemic":      {IDGLHigh, IDGIHigh, IDGoodGL},
	"water":         {IDWaterEveningLow, IDWaterReminder, IDWaterTraining},
	"late_eating":   {IDNightEating, IDLateDinner, IDEveningHeavy},
	"post_training": {IDTrainingFuel, IDPostTrainingProtein, IDTrainingRecovery},
	"stress":        {IDStressEating, IDStressSupport},
	"streak":        {IDStreak14, IDStreak7, IDStreak3},
}

var groupOf = func() map[string]string {
	m := make(map[string]string)
	for group, ids := range ExclusiveGroups {
		for _, id := range ids {
			m[id] = group
		}
	}
	return m
}()

// Deduplicate keeps one candidate per exclusive group: the highest priority,
// first seen on ties. Items outside any group pass through. Order is kept.
func Deduplicate(candidates []models.Candidate) []models.Candidate {
	winner := make(map[string]int)
	for i, c := range candidates {
		group, ok := groupOf[c.ID]
		if !ok {
			continue
		}
		if best, seen := winner[group]; !seen || c.Priority > candidates[best].Priority {
			winner[group] = i
		}
	}

	out := make([]models.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if group, ok := groupOf[c.ID]; ok && winner[group] != i {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FilterByTimeRestrictions drops candidates whose window excludes hour
func FilterByTimeRestrictions(candidates []models.Candidate, hour int) []models.Candidate {
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Window != nil && !c.Window.Contains(hour) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Limit returns at most n items of a ranked list; n <= 0 means no limit
func Limit(candidates []models.Candidate, n int) []models.Candidate {
	if n <= 0 || n >= len(candidates) {
		return candidates
	}
	return candidates[:n]
}
