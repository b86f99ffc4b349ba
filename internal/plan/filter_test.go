package plan

import (
	"testing"

	"go.uber.org/zap"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

func newTestFilter() *Filter {
	return NewFilter(&logger.Logger{SugaredLogger: zap.NewNop().Sugar()})
}

func TestApplyDefaults(t *testing.T) {
	untouched := &types.Routine{ID: 1}
	included := &types.Routine{ID: 2, RuleStatus: types.RuleStatusIncluded, ScoreRules: 5}
	excluded := &types.Routine{ID: 3, RuleStatus: types.RuleStatusExcluded}

	newTestFilter().ApplyDefaults([]*types.Routine{untouched, included, excluded})

	if untouched.RuleStatus != types.RuleStatusNone || untouched.ScoreRules != 1 {
		t.Fatalf("untouched: status=%q score=%d, want no_rule_applied/1", untouched.RuleStatus, untouched.ScoreRules)
	}
	if included.ScoreRules != 5 {
		t.Fatalf("included routine score must be preserved, got %d", included.ScoreRules)
	}
	if excluded.ScoreRules != 0 {
		t.Fatalf("excluded routine must stay at score 0, got %d", excluded.ScoreRules)
	}
}

func TestRequiredOrder(t *testing.T) {
	scores := types.HealthScores{
		types.PillarSleep:  30,
		types.PillarStress: 70,
	}
	movementOrders := types.MovementOrders{Mobility: 2, Cardio: 4, Strength: 3}

	cases := []struct {
		name    string
		routine *types.Routine
		want    int
	}{
		{
			name:    "movement_uses_self_report",
			routine: &types.Routine{Pillar: types.PillarMovement, MovementType: "CARDIO", Order: 1},
			want:    4,
		},
		{
			name:    "movement_default_mobility",
			routine: &types.Routine{Pillar: types.PillarMovement, MovementType: "", Order: 1},
			want:    2,
		},
		{
			name:    "scored_pillar_uses_score",
			routine: &types.Routine{Pillar: types.PillarSleep, Order: 5},
			want:    2,
		},
		{
			name:    "high_score_high_order",
			routine: &types.Routine{Pillar: types.PillarStress, Order: 1},
			want:    5,
		},
		{
			name:    "missing_score_falls_back",
			routine: &types.Routine{Pillar: types.PillarGratitude, Order: 4},
			want:    4,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RequiredOrder(tc.routine, scores, movementOrders)
			if got != tc.want {
				t.Fatalf("RequiredOrder=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestOrderForScoreThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{0, 1}, {16, 1}, {17, 2}, {32, 2}, {33, 3}, {48, 3}, {49, 4}, {64, 4}, {65, 5}, {80, 5},
	}
	for _, tc := range cases {
		if got := types.OrderForScore(tc.score); got != tc.want {
			t.Fatalf("OrderForScore(%v)=%d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestApplyDisplayOrderGate(t *testing.T) {
	scores := types.HealthScores{types.PillarSleep: 55} // order 4
	movementOrders := types.MovementOrders{Mobility: 3, Cardio: 3, Strength: 3}

	gated := &types.Routine{ID: 1, Pillar: types.PillarSleep, DisplayForOrder: "2,3"}
	visible := &types.Routine{ID: 2, Pillar: types.PillarSleep, DisplayForOrder: "2,3,4"}
	unrestricted := &types.Routine{ID: 3, Pillar: types.PillarSleep}
	alreadyOut := &types.Routine{ID: 4, Pillar: types.PillarSleep, DisplayForOrder: "4", RuleStatus: types.RuleStatusExcluded}

	newTestFilter().ApplyDisplayOrderGate([]*types.Routine{gated, visible, unrestricted, alreadyOut}, scores, movementOrders)

	if gated.RuleStatus != types.RuleStatusExcluded {
		t.Fatalf("order 4 outside allow-list 2,3 must be excluded")
	}
	if visible.RuleStatus == types.RuleStatusExcluded {
		t.Fatalf("order 4 inside allow-list must survive")
	}
	if unrestricted.RuleStatus == types.RuleStatusExcluded {
		t.Fatalf("routine without displayForOrder must survive")
	}
	if alreadyOut.RuleStatus != types.RuleStatusExcluded {
		t.Fatalf("already excluded routine must stay excluded")
	}
}

func TestApplyEquipmentGate(t *testing.T) {
	band := &types.Routine{ID: 1, Pillar: types.PillarMovement, Equipment: "BAND"}
	none := &types.Routine{ID: 2, Pillar: types.PillarMovement, Equipment: "NONE"}
	empty := &types.Routine{ID: 3, Pillar: types.PillarMovement}
	sleepBand := &types.Routine{ID: 4, Pillar: types.PillarSleep, Equipment: "BAND"}

	newTestFilter().ApplyEquipmentGate([]*types.Routine{band, none, empty, sleepBand})

	if band.RuleStatus != types.RuleStatusExcluded {
		t.Fatalf("movement routine with equipment must be excluded")
	}
	if none.RuleStatus == types.RuleStatusExcluded || empty.RuleStatus == types.RuleStatusExcluded {
		t.Fatalf("equipment-free movement routines must survive")
	}
	if sleepBand.RuleStatus == types.RuleStatusExcluded {
		t.Fatalf("equipment gate must only apply to movement")
	}
}

func TestCandidates(t *testing.T) {
	routines := []*types.Routine{
		{ID: 1, Pillar: types.PillarSleep, ScheduleCategory: types.CategoryDailyRoutine},
		{ID: 2, Pillar: types.PillarSleep, ScheduleCategory: types.CategoryDailyChallenge},
		{ID: 3, Pillar: types.PillarSleep, ScheduleCategory: types.CategoryDailyRoutine, RuleStatus: types.RuleStatusExcluded},
		{ID: 4, Pillar: types.PillarStress, ScheduleCategory: types.CategoryDailyRoutine},
	}
	got := Candidates(routines, types.PillarSleep, types.CategoryDailyRoutine)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Candidates returned %d entries, want exactly routine 1", len(got))
	}
}
