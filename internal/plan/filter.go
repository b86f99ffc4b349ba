package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

const equipmentNone = "NONE"

// Filter applies the post-rule gates: score defaulting, the display-order
// gate and the movement equipment gate.
type Filter struct {
	log *logger.Logger
}

func NewFilter(baseLog *logger.Logger) *Filter {
	return &Filter{log: baseLog.With("component", "CatalogFilter")}
}

// ApplyDefaults gives every routine untouched by rules a minimal, non-zero
// score so trivial routines stay selectable as fallback candidates.
func (f *Filter) ApplyDefaults(routines []*types.Routine) {
	for _, routine := range routines {
		if routine.RuleStatus == "" {
			routine.RuleStatus = types.RuleStatusNone
			routine.ScoreRules = 1
		}
	}
}

// RequiredOrder computes the 1-5 order a routine is gated against. Movement
// routines use the self-reported proficiency matching their movement type;
// every other pillar derives the order from its health score. A missing
// health score falls back to the routine's own static order.
func RequiredOrder(routine *types.Routine, scores types.HealthScores, movementOrders types.MovementOrders) int {
	if routine.Pillar == types.PillarMovement {
		return movementOrders.OrderFor(routine.MovementType)
	}
	score, ok := scores[routine.Pillar]
	if !ok {
		return routine.Order
	}
	return types.OrderForScore(score)
}

// ApplyDisplayOrderGate force-excludes routines whose displayForOrder
// allow-list does not contain the computed order. Routines without the field
// pass unaffected.
func (f *Filter) ApplyDisplayOrderGate(routines []*types.Routine, scores types.HealthScores, movementOrders types.MovementOrders) {
	for _, routine := range routines {
		if routine.RuleStatus == types.RuleStatusExcluded || routine.DisplayForOrder == "" {
			continue
		}
		allowed := parseOrderList(routine.DisplayForOrder)
		if len(allowed) == 0 {
			continue
		}
		order := RequiredOrder(routine, scores, movementOrders)
		if !allowed[order] {
			routine.Exclude(fmt.Sprintf("not visible at order %d (displayForOrder %s).", order, routine.DisplayForOrder))
		}
	}
}

// ApplyEquipmentGate excludes movement routines requiring equipment. Hard
// policy, independent of the rule table.
func (f *Filter) ApplyEquipmentGate(routines []*types.Routine) {
	for _, routine := range routines {
		if routine.Pillar != types.PillarMovement || routine.RuleStatus == types.RuleStatusExcluded {
			continue
		}
		equipment := strings.ToUpper(strings.TrimSpace(routine.Equipment))
		if equipment != "" && equipment != equipmentNone {
			routine.Exclude(fmt.Sprintf("requires equipment %s.", routine.Equipment))
		}
	}
}

func parseOrderList(s string) map[int]bool {
	allowed := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		allowed[n] = true
	}
	return allowed
}

// Candidates returns the non-excluded routines of one pillar, optionally
// narrowed to a schedule category.
func Candidates(routines []*types.Routine, pillar types.Pillar, category types.ScheduleCategory) []*types.Routine {
	var out []*types.Routine
	for _, routine := range routines {
		if routine.RuleStatus == types.RuleStatusExcluded {
			continue
		}
		if pillar != "" && routine.Pillar != pillar {
			continue
		}
		if category != "" && routine.ScheduleCategory != category {
			continue
		}
		out = append(out, routine)
	}
	return out
}
