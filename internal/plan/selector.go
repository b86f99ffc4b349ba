package plan

import (
	"math"
	"sort"
	"strings"

	"github.com/yungbote/vitalplan-backend/internal/types"
)

// tagOrderKeys maps selection tags onto the movement-order dimension used to
// compute a tag combination's target order. Unmapped tags default to 3
// (middle of the 1-5 range).
var tagOrderKeys = map[string]string{
	"strength":  "STRENGTH",
	"lowerbody": "STRENGTH",
	"upperbody": "STRENGTH",
	"core":      "STRENGTH",
	"cardio":    "CARDIO",
	"endurance": "CARDIO",
	"mobility":  "MOBILITY",
	"stretch":   "MOBILITY",
	"balance":   "MOBILITY",
	"warmup":    "MOBILITY",
}

const defaultTagOrder = 3

// SelectRoutines fills each required tag-combination count from the
// candidate pool. Combinations are processed most-specific first (more
// simultaneous tags win); within a combination candidates are ranked by
// proximity to the user's target proficiency order, not by rule score.
// Already-selected routines and variation overlaps are skipped; when the
// pool runs dry the shortfall is accepted.
func SelectRoutines(tagCounts map[string]int, candidates []*types.Routine, movementOrders types.MovementOrders) []*types.Routine {
	combos := make([]string, 0, len(tagCounts))
	for combo := range tagCounts {
		combos = append(combos, combo)
	}
	sort.Slice(combos, func(i, j int) bool {
		ti, tj := comboTags(combos[i]), comboTags(combos[j])
		if len(ti) != len(tj) {
			return len(ti) > len(tj)
		}
		return combos[i] < combos[j]
	})

	var selected []*types.Routine
	selectedIDs := map[int]bool{}
	usedVariations := map[string]bool{}

	for _, combo := range combos {
		tags := comboTags(combo)
		required := tagCounts[combo]
		matching := matchingCandidates(candidates, tags)
		target := targetOrder(tags, movementOrders)
		sortByOrderProximity(matching, target)

		taken := 0
		for _, candidate := range matching {
			if taken >= required {
				break
			}
			if selectedIDs[candidate.ID] {
				continue
			}
			if variationOverlaps(candidate.Variation, usedVariations) {
				continue
			}
			selected = append(selected, candidate)
			selectedIDs[candidate.ID] = true
			for _, token := range variationTokens(candidate.Variation) {
				usedVariations[token] = true
			}
			taken++
		}
	}
	return selected
}

// targetOrder averages the per-tag proficiency order of a combination.
func targetOrder(tags []string, movementOrders types.MovementOrders) float64 {
	if len(tags) == 0 {
		return defaultTagOrder
	}
	sum := 0.0
	for _, tag := range tags {
		key, ok := tagOrderKeys[strings.ToLower(tag)]
		if !ok {
			sum += defaultTagOrder
			continue
		}
		sum += float64(movementOrders.OrderFor(key))
	}
	return sum / float64(len(tags))
}

func matchingCandidates(candidates []*types.Routine, tags []string) []*types.Routine {
	var out []*types.Routine
	for _, candidate := range candidates {
		if candidate.RuleStatus == types.RuleStatusExcluded {
			continue
		}
		if hasAllTags(candidate, tags) {
			out = append(out, candidate)
		}
	}
	return out
}

func hasAllTags(routine *types.Routine, tags []string) bool {
	for _, tag := range tags {
		if !routine.HasTag(tag) {
			return false
		}
	}
	return true
}

// sortByOrderProximity orders candidates by absolute distance from the
// target order; ties fall back to rule score (higher first), then id, to
// keep runs deterministic.
func sortByOrderProximity(routines []*types.Routine, target float64) {
	sort.SliceStable(routines, func(i, j int) bool {
		di := math.Abs(float64(routines[i].Order) - target)
		dj := math.Abs(float64(routines[j].Order) - target)
		if di != dj {
			return di < dj
		}
		if routines[i].ScoreRules != routines[j].ScoreRules {
			return routines[i].ScoreRules > routines[j].ScoreRules
		}
		return routines[i].ID < routines[j].ID
	})
}

func comboTags(combo string) []string {
	var tags []string
	for _, part := range strings.Split(combo, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func variationTokens(variation string) []string {
	var tokens []string
	for _, part := range strings.Split(variation, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

func variationOverlaps(variation string, used map[string]bool) bool {
	for _, token := range variationTokens(variation) {
		if used[token] {
			return true
		}
	}
	return false
}

// ReorderByPrimaryMuscle greedily reorders the selection so consecutive
// entries avoid sharing a primary muscle group. When no alternative remains
// at a step, same-muscle adjacency is accepted.
func ReorderByPrimaryMuscle(selected []*types.Routine) []*types.Routine {
	if len(selected) < 2 {
		return selected
	}
	remaining := append([]*types.Routine(nil), selected...)
	out := make([]*types.Routine, 0, len(remaining))
	out = append(out, remaining[0])
	remaining = remaining[1:]

	for len(remaining) > 0 {
		prev := out[len(out)-1].PrimaryMuscle()
		pick := -1
		for i, candidate := range remaining {
			if candidate.PrimaryMuscle() != prev || prev == "" {
				pick = i
				break
			}
		}
		if pick == -1 {
			pick = 0
		}
		out = append(out, remaining[pick])
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return out
}
