package plan

import (
	"strings"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

// Intensity buckets for movement packages, keyed by the daily time budget.
const (
	IntensityMini   = "MINI"
	IntensityShort  = "SHORT"
	IntensityMedium = "MEDIUM"
	IntensityLong   = "LONG"
)

// IntensityForBudget maps the total daily time budget (minutes) onto a
// movement package intensity. Unknown budgets land on SHORT.
func IntensityForBudget(budgetMins int) string {
	switch budgetMins {
	case 20:
		return IntensityMini
	case 40:
		return IntensityShort
	case 50:
		return IntensityMedium
	case 90:
		return IntensityLong
	default:
		return IntensityShort
	}
}

const defaultSubcategory = "BASICS"

// SelectPackage picks the package serving one pillar this run. Movement
// packages match on intensity; all other pillars match on the user's
// computed order. A miss is not an error: the pillar simply contributes no
// package-derived content this run.
func SelectPackage(log *logger.Logger, packages []types.RoutinePackage, pillar types.Pillar, subcategory string, order int, intensity string) *types.RoutinePackage {
	if subcategory == "" {
		subcategory = defaultSubcategory
	}
	for i := range packages {
		pkg := &packages[i]
		if pkg.Pillar != pillar || !strings.EqualFold(pkg.Subcategory, subcategory) {
			continue
		}
		if pillar == types.PillarMovement {
			if strings.EqualFold(pkg.Intensity, intensity) {
				return pkg
			}
			continue
		}
		if len(pkg.Orders) == 0 {
			return pkg
		}
		for _, o := range pkg.Orders {
			if o == order {
				return pkg
			}
		}
	}
	if log != nil {
		log.Warn("No package matched, pillar contributes no package content this run",
			"pillar", pillar, "subcategory", subcategory, "order", order, "intensity", intensity)
	}
	return nil
}

// DefaultPackages is the built-in package table used when no packages file
// is configured. Movement packages scale the super-routine tag quotas with
// the intensity bucket; the other pillars bundle their basic daily routine.
func DefaultPackages() []types.RoutinePackage {
	return []types.RoutinePackage{
		{
			Name: "MOVEMENT BASICS MINI", Pillar: types.PillarMovement, Subcategory: defaultSubcategory,
			Intensity: IntensityMini, SuperRoutineID: 997,
			TagCounts:  map[string]int{"warmup": 1, "strength": 2},
			RoutineIDs: []int{991, 992, 993},
		},
		{
			Name: "MOVEMENT BASICS SHORT", Pillar: types.PillarMovement, Subcategory: defaultSubcategory,
			Intensity: IntensityShort, SuperRoutineID: 997,
			TagCounts:  map[string]int{"warmup": 1, "strength,lowerbody": 2, "strength,upperbody": 2},
			RoutineIDs: []int{991, 992, 993},
		},
		{
			Name: "MOVEMENT BASICS MEDIUM", Pillar: types.PillarMovement, Subcategory: defaultSubcategory,
			Intensity: IntensityMedium, SuperRoutineID: 997,
			TagCounts:  map[string]int{"warmup": 2, "strength,lowerbody": 2, "strength,upperbody": 2, "core": 1},
			RoutineIDs: []int{991, 992, 993},
		},
		{
			Name: "MOVEMENT BASICS LONG", Pillar: types.PillarMovement, Subcategory: defaultSubcategory,
			Intensity: IntensityLong, SuperRoutineID: 997,
			TagCounts:  map[string]int{"warmup": 2, "strength,lowerbody": 3, "strength,upperbody": 3, "core": 2},
			RoutineIDs: []int{991, 992, 993},
		},
		{Name: "NUTRITION BASICS", Pillar: types.PillarNutrition, Subcategory: defaultSubcategory, RoutineIDs: []int{101}},
		{Name: "SLEEP BASICS", Pillar: types.PillarSleep, Subcategory: defaultSubcategory, RoutineIDs: []int{102}},
		{Name: "SOCIAL BASICS", Pillar: types.PillarSocial, Subcategory: defaultSubcategory, RoutineIDs: []int{103}},
		{Name: "STRESS BASICS", Pillar: types.PillarStress, Subcategory: defaultSubcategory, RoutineIDs: []int{104}},
		{Name: "GRATITUDE BASICS", Pillar: types.PillarGratitude, Subcategory: defaultSubcategory, RoutineIDs: []int{105}},
		{Name: "COGNITIVE BASICS", Pillar: types.PillarCognitive, Subcategory: defaultSubcategory, RoutineIDs: []int{106}},
	}
}

// DefaultTemplates returns the fixed super-routine catalog entries, keyed by
// external id. The fullbody workout (997) runs Mon-Fri every week; the
// split variants cover lower/upper/core days.
func DefaultTemplates() map[int]types.SuperRoutineTemplate {
	return map[int]types.SuperRoutineTemplate{
		997: {
			ExternalID:         997,
			Name:               "Fullbody Workout",
			Pillar:             types.PillarMovement,
			ScheduleDays:       []int{1, 2, 3, 4, 5},
			ScheduleWeeks:      []int{1, 2, 3, 4},
			BreakSecondsPerSet: 20,
		},
		996: {
			ExternalID:         996,
			Name:               "Upperbody Workout",
			Pillar:             types.PillarMovement,
			ScheduleDays:       []int{2, 5},
			ScheduleWeeks:      []int{1, 2, 3, 4},
			BreakSecondsPerSet: 20,
		},
		995: {
			ExternalID:         995,
			Name:               "Lowerbody Workout",
			Pillar:             types.PillarMovement,
			ScheduleDays:       []int{1, 4},
			ScheduleWeeks:      []int{1, 2, 3, 4},
			BreakSecondsPerSet: 20,
		},
		994: {
			ExternalID:         994,
			Name:               "Core Workout",
			Pillar:             types.PillarMovement,
			ScheduleDays:       []int{3},
			ScheduleWeeks:      []int{1, 2, 3, 4},
			BreakSecondsPerSet: 20,
		},
	}
}
