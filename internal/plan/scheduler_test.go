package plan

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(&logger.Logger{SugaredLogger: zap.NewNop().Sugar()}, 1)
}

func planStart() time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
}

func weeklyChild(id int, name, muscles string, duration float64, sets int, tags ...string) *types.Routine {
	tagList := make([]types.Tag, 0, len(tags))
	for _, tag := range tags {
		tagList = append(tagList, types.Tag{Tag: tag})
	}
	return &types.Routine{
		ID: id, UniqueID: id, Name: name, Pillar: types.PillarMovement,
		ScheduleCategory: types.CategoryWeeklyRoutine,
		Duration:         duration, Sets: sets, MuscleGroups: muscles, Tags: tagList,
	}
}

func challenge(id int, pillar types.Pillar, category types.ScheduleCategory, duration float64) *types.Routine {
	return &types.Routine{
		ID: id, UniqueID: id, Pillar: pillar,
		ScheduleCategory: category, Duration: duration,
	}
}

func entriesByCategory(entries []*Entry, category types.ScheduleCategory) []*Entry {
	var out []*Entry
	for _, entry := range entries {
		if entry.Category == category {
			out = append(out, entry)
		}
	}
	return out
}

func TestBuildScheduleSuperRoutine(t *testing.T) {
	routines := []*types.Routine{
		weeklyChild(1, "Jumping Jacks", "Fullbody (primary)", 2, 1, "warmup"),
		weeklyChild(3, "Squats", "Quads (primary)", 3, 3, "strength", "lowerbody"),
		weeklyChild(5, "Pushups", "Chest (primary)", 3, 3, "strength", "upperbody"),
		{ID: 991, UniqueID: 991, Pillar: types.PillarMovement, ScheduleCategory: types.CategoryDailyRoutine, Duration: 10},
		{ID: 992, UniqueID: 992, Pillar: types.PillarMovement, ScheduleCategory: types.CategoryDailyRoutine, Duration: 5},
		{ID: 993, UniqueID: 993, Pillar: types.PillarMovement, ScheduleCategory: types.CategoryDailyRoutine, Duration: 7},
	}
	pkg := &types.RoutinePackage{
		Name: "MOVEMENT BASICS MEDIUM", Pillar: types.PillarMovement,
		Intensity: IntensityMedium, SuperRoutineID: 997,
		TagCounts:  map[string]int{"warmup": 1, "strength,lowerbody": 1, "strength,upperbody": 1},
		RoutineIDs: []int{991, 992, 993},
	}
	in := Input{
		AccountID:            "acct-1",
		TotalDailyTimeInMins: 50,
		MovementOrders:       types.MovementOrders{Mobility: 3, Cardio: 3, Strength: 3},
		Routines:             routines,
		Packages:             map[types.Pillar]*types.RoutinePackage{types.PillarMovement: pkg},
		Templates:            DefaultTemplates(),
		PlanStart:            planStart(),
	}

	entries := newTestScheduler().BuildSchedule(in)

	weekly := entriesByCategory(entries, types.CategoryWeeklyRoutine)
	if len(weekly) != 4 {
		t.Fatalf("weekly entries: %d, want parent + 3 children", len(weekly))
	}

	var parent *Entry
	children := map[int]*Entry{}
	for _, entry := range weekly {
		if entry.IsParent {
			parent = entry
			continue
		}
		children[entry.Routine.ID] = entry
	}
	if parent == nil || parent.Routine.UniqueID != 997 {
		t.Fatalf("missing fullbody parent entry")
	}
	if len(parent.Days) != 5 || parent.Days[0] != 1 || parent.Days[4] != 5 {
		t.Fatalf("parent days: %v, want 1-5", parent.Days)
	}
	if len(parent.Weeks) != 4 {
		t.Fatalf("parent weeks: %v, want all 4", parent.Weeks)
	}
	// 2 + 1*20/60 + 3 + 3*20/60 + 3 + 3*20/60 = 10.33 rounds to 10.
	if parent.Duration != 10 {
		t.Fatalf("parent duration: %v, want 10", parent.Duration)
	}
	for _, id := range []int{1, 3, 5} {
		child, ok := children[id]
		if !ok {
			t.Fatalf("child %d not scheduled", id)
		}
		if child.ParentUniqueID != 997 {
			t.Fatalf("child %d parent: %d, want 997", id, child.ParentUniqueID)
		}
		if len(child.Days) != 5 {
			t.Fatalf("child %d must inherit template days, got %v", id, child.Days)
		}
	}

	daily := entriesByCategory(entries, types.CategoryDailyRoutine)
	if len(daily) != 3 {
		t.Fatalf("daily entries: %d, want 3", len(daily))
	}
	wantDurations := map[int]float64{991: 15, 992: 12, 993: 20}
	for _, entry := range daily {
		if len(entry.Days) != 7 || len(entry.Weeks) != 4 {
			t.Fatalf("daily routine %d grid: days=%v weeks=%v", entry.Routine.ID, entry.Days, entry.Weeks)
		}
		if want := wantDurations[entry.Routine.UniqueID]; entry.Duration != want {
			t.Fatalf("routine %d duration: %v, want budget override %v", entry.Routine.UniqueID, entry.Duration, want)
		}
	}
}

func TestBuildScheduleChallengeQuotas(t *testing.T) {
	var routines []*types.Routine
	dailyIDs := map[types.Pillar][]int{
		types.PillarSleep:     {211, 212, 213},
		types.PillarCognitive: {221, 222, 223},
		types.PillarSocial:    {231, 232, 233},
		types.PillarStress:    {241, 242, 243},
	}
	for pillar, ids := range dailyIDs {
		for _, id := range ids {
			routines = append(routines, challenge(id, pillar, types.CategoryDailyChallenge, 5))
		}
	}
	basics := challenge(301, types.PillarCognitive, types.CategoryWeeklyChallenge, 10)
	basics.PackageTags = []string{"BASICS"}
	routines = append(routines,
		basics,
		challenge(302, types.PillarSocial, types.CategoryWeeklyChallenge, 10),
		challenge(303, types.PillarSleep, types.CategoryWeeklyChallenge, 10),
		challenge(304, types.PillarStress, types.CategoryWeeklyChallenge, 10),
		challenge(305, types.PillarNutrition, types.CategoryWeeklyChallenge, 10),
		challenge(401, types.PillarCognitive, types.CategoryMonthlyChallenge, 15),
	)

	in := Input{
		TotalDailyTimeInMins: 40,
		Scores: types.HealthScores{
			types.PillarMovement:  70,
			types.PillarNutrition: 60,
			types.PillarSleep:     10,
			types.PillarSocial:    20,
			types.PillarStress:    30,
			types.PillarGratitude: 70,
			types.PillarCognitive: 5,
		},
		Routines:  routines,
		PlanStart: planStart(),
	}

	entries := newTestScheduler().BuildSchedule(in)

	daily := entriesByCategory(entries, types.CategoryDailyChallenge)
	if len(daily) != 12 {
		t.Fatalf("daily challenges: %d, want 12 (3 per week)", len(daily))
	}
	perWeek := map[int]int{}
	for _, entry := range daily {
		if len(entry.Days) != 1 || len(entry.Weeks) != 1 {
			t.Fatalf("daily challenge %d placement: days=%v weeks=%v", entry.Routine.ID, entry.Days, entry.Weeks)
		}
		day := entry.Days[0]
		if day != 1 && day != 4 && day != 7 {
			t.Fatalf("daily challenge day %d outside 1/4/7 skeleton", day)
		}
		perWeek[entry.Weeks[0]]++
		if entry.Expiration == nil {
			t.Fatalf("daily challenge %d missing expiration", entry.Routine.ID)
		}
	}
	for week := 1; week <= 4; week++ {
		if perWeek[week] != 3 {
			t.Fatalf("week %d has %d daily challenges, want 3", week, perWeek[week])
		}
	}
	// Worst score first: cognition (5) opens the rotation.
	if daily[0].Routine.ID != 221 || daily[0].Weeks[0] != 1 || daily[0].Days[0] != 1 {
		t.Fatalf("first daily challenge: id=%d week=%v day=%v, want cognition 221 on week 1 day 1",
			daily[0].Routine.ID, daily[0].Weeks, daily[0].Days)
	}
	wantExpiry := planStart().AddDate(0, 0, 1)
	if !daily[0].Expiration.Equal(wantExpiry) {
		t.Fatalf("first daily challenge expiration %v, want %v", daily[0].Expiration, wantExpiry)
	}

	weekly := entriesByCategory(entries, types.CategoryWeeklyChallenge)
	if len(weekly) != 4 {
		t.Fatalf("weekly challenges: %d, want 4", len(weekly))
	}
	byWeek := map[int]*Entry{}
	for _, entry := range weekly {
		week := entry.Weeks[0]
		if byWeek[week] != nil {
			t.Fatalf("week %d has more than one weekly challenge", week)
		}
		byWeek[week] = entry
	}
	if byWeek[1] == nil || byWeek[1].Routine.Pillar != types.PillarCognitive {
		t.Fatalf("week 1 weekly challenge must be the guaranteed cognition slot")
	}
	if byWeek[2] == nil || byWeek[2].Routine.Pillar != types.PillarSocial {
		t.Fatalf("week 2 weekly challenge must be the guaranteed social slot")
	}
	if byWeek[3] == nil || byWeek[3].Routine.ID != 303 {
		t.Fatalf("week 3 must be filled by the worst-scoring remaining pillar (sleep)")
	}
	if byWeek[4] == nil || byWeek[4].Routine.ID != 304 {
		t.Fatalf("week 4 must be filled by stress")
	}

	monthly := entriesByCategory(entries, types.CategoryMonthlyChallenge)
	if len(monthly) != 1 {
		t.Fatalf("monthly challenges: %d, want exactly 1", len(monthly))
	}
	m := monthly[0]
	if m.Routine.ID != 401 || m.Weeks[0] != 1 || m.Days[0] != 1 {
		t.Fatalf("monthly challenge placement: id=%d weeks=%v days=%v", m.Routine.ID, m.Weeks, m.Days)
	}
	if want := planStart().AddDate(0, 0, 28); m.Expiration == nil || !m.Expiration.Equal(want) {
		t.Fatalf("monthly challenge must expire with the plan, got %v", m.Expiration)
	}
}

func TestDedupWeeklyChallenges(t *testing.T) {
	s := newTestScheduler()
	basics := challenge(301, types.PillarCognitive, types.CategoryWeeklyChallenge, 10)
	basics.PackageTags = []string{"BASICS"}
	plain := challenge(302, types.PillarSocial, types.CategoryWeeklyChallenge, 10)
	first := challenge(303, types.PillarSleep, types.CategoryWeeklyChallenge, 10)
	second := challenge(304, types.PillarStress, types.CategoryWeeklyChallenge, 10)

	entries := []*Entry{
		{Routine: plain, Weeks: []int{2}, Category: types.CategoryWeeklyChallenge},
		{Routine: basics, Weeks: []int{2}, Category: types.CategoryWeeklyChallenge},
		{Routine: first, Weeks: []int{3}, Category: types.CategoryWeeklyChallenge},
		{Routine: second, Weeks: []int{3}, Category: types.CategoryWeeklyChallenge},
	}
	got := s.dedupWeeklyChallenges(entries)
	if len(got) != 2 {
		t.Fatalf("dedup kept %d entries, want 2", len(got))
	}
	kept := map[int]bool{}
	for _, entry := range got {
		kept[entry.Routine.ID] = true
	}
	if !kept[301] {
		t.Fatalf("BASICS-tagged entry must win its week")
	}
	if !kept[303] {
		t.Fatalf("without BASICS the first placed entry must win")
	}
}

func TestBuildActionPlanLinksParents(t *testing.T) {
	start := planStart()
	in := Input{
		AccountID:            "acct-9",
		Gender:               "female",
		PreviousPlanUniqueID: "prev-plan",
		TotalDailyTimeInMins: 40,
		PlanStart:            start,
	}
	parent := &Entry{
		Routine:  &types.Routine{ID: 997, UniqueID: 997, Name: "Fullbody Workout", Pillar: types.PillarMovement, Unit: "min"},
		Duration: 12,
		Days:     []int{1, 2, 3, 4, 5},
		Weeks:    []int{1, 2, 3, 4},
		Category: types.CategoryWeeklyRoutine,
		IsParent: true,
	}
	child := &Entry{
		Routine:        &types.Routine{ID: 3, UniqueID: 3, Name: "Squats", Pillar: types.PillarMovement, Sets: 3},
		Duration:       4,
		Days:           []int{1, 2, 3, 4, 5},
		Weeks:          []int{1, 2, 3, 4},
		Category:       types.CategoryWeeklyRoutine,
		ParentUniqueID: 997,
	}
	orphan := &Entry{
		Routine:        &types.Routine{ID: 4, UniqueID: 4, Pillar: types.PillarMovement},
		Duration:       3,
		Category:       types.CategoryWeeklyRoutine,
		ParentUniqueID: 998,
	}

	doc := BuildActionPlan(in, []*Entry{parent, child, orphan}, "plan-123")

	data := doc.Data
	if data.ActionPlanUniqueID != "plan-123" || data.AccountID != "acct-9" {
		t.Fatalf("envelope ids: %q %q", data.ActionPlanUniqueID, data.AccountID)
	}
	if data.PreviousActionPlanUniqueID != "prev-plan" {
		t.Fatalf("previous plan id: %q", data.PreviousActionPlanUniqueID)
	}
	if data.PeriodInDays != types.PlanPeriodDays {
		t.Fatalf("period: %d, want %d", data.PeriodInDays, types.PlanPeriodDays)
	}
	if len(data.Routines) != 3 {
		t.Fatalf("routines: %d, want 3", len(data.Routines))
	}
	for i, wire := range data.Routines {
		if wire.ScheduledID != i+1 {
			t.Fatalf("scheduled ids must be sequential, got %d at index %d", wire.ScheduledID, i)
		}
	}
	if data.Routines[1].ParentRoutineID != 1 {
		t.Fatalf("child must point at parent's scheduled id, got %d", data.Routines[1].ParentRoutineID)
	}
	if data.Routines[2].ParentRoutineID != 998 {
		t.Fatalf("orphan child keeps the raw external id, got %d", data.Routines[2].ParentRoutineID)
	}
	goal := data.Routines[0].Goal
	if goal == nil || goal.Value != 12 || goal.Unit != "min" {
		t.Fatalf("parent goal: %+v, want 12 min", goal)
	}
	if data.Routines[0].DurationCalculated != 12 {
		t.Fatalf("parent wire duration: %d, want 12", data.Routines[0].DurationCalculated)
	}
}

func TestIntensityForBudget(t *testing.T) {
	cases := []struct {
		budget int
		want   string
	}{
		{20, IntensityMini}, {40, IntensityShort}, {50, IntensityMedium}, {90, IntensityLong}, {35, IntensityShort},
	}
	for _, tc := range cases {
		if got := IntensityForBudget(tc.budget); got != tc.want {
			t.Fatalf("IntensityForBudget(%d)=%q, want %q", tc.budget, got, tc.want)
		}
	}
}

func TestSelectPackage(t *testing.T) {
	packages := DefaultPackages()

	movement := SelectPackage(nil, packages, types.PillarMovement, "", 0, IntensityMedium)
	if movement == nil || movement.Name != "MOVEMENT BASICS MEDIUM" {
		t.Fatalf("movement package: %+v", movement)
	}
	sleep := SelectPackage(nil, packages, types.PillarSleep, "", 2, "")
	if sleep == nil || sleep.Name != "SLEEP BASICS" {
		t.Fatalf("order-free package must match any order, got %+v", sleep)
	}
	miss := SelectPackage(nil, packages, types.PillarMovement, "", 0, "EXTREME")
	if miss != nil {
		t.Fatalf("unknown intensity must miss, got %+v", miss)
	}
}
