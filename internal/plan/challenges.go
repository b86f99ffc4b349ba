package plan

import (
	"sort"
	"time"

	"github.com/yungbote/vitalplan-backend/internal/types"
)

const (
	planWeeks           = 4
	dailyChallengesWeek = 3
)

// dailyChallengeDays is the fixed skeleton daily challenges land on.
var dailyChallengeDays = [dailyChallengesWeek]int{1, 4, 7}

// scheduleDailyChallenges assigns up to three daily challenges per week on
// the 1/4/7 skeleton, round-robin across pillars ordered worst health score
// first. Pillars without remaining candidates are skipped; when the pool is
// empty the remaining slots stay open.
func (s *Scheduler) scheduleDailyChallenges(in Input, entries []*Entry, used map[int]bool) []*Entry {
	pool := challengePool(in.Routines, used, types.CategoryDailyChallenge)
	pillars := pillarsByScoreAsc(in.Scores, pool)
	if len(pillars) == 0 {
		return entries
	}

	next := 0
	for week := 1; week <= planWeeks; week++ {
		for _, day := range dailyChallengeDays {
			routine, pillarIdx := popRoundRobin(pool, pillars, next)
			if routine == nil {
				return entries
			}
			next = (pillarIdx + 1) % len(pillars)
			expiration := endOfPlanDay(in.PlanStart, week, day)
			entries = append(entries, &Entry{
				Routine:    routine,
				Duration:   routine.Duration,
				Days:       []int{day},
				Weeks:      []int{week},
				Category:   types.CategoryDailyChallenge,
				Expiration: &expiration,
			})
			used[routine.ID] = true
		}
	}
	return entries
}

// scheduleWeeklyChallenges fills one challenge slot per week. Cognition and
// social get a guaranteed slot first when candidates exist; remaining empty
// weeks are filled from whichever pillars score worst.
func (s *Scheduler) scheduleWeeklyChallenges(in Input, entries []*Entry, used map[int]bool) []*Entry {
	pool := challengePool(in.Routines, used, types.CategoryWeeklyChallenge)

	for _, must := range []types.Pillar{types.PillarCognitive, types.PillarSocial} {
		if hasWeeklyChallengeForPillar(entries, must) {
			continue
		}
		week := firstEmptyChallengeWeek(entries)
		if week == 0 {
			break
		}
		routine := popFirst(pool, must)
		if routine == nil {
			continue
		}
		entries = append(entries, s.weeklyChallengeEntry(in, routine, week))
		used[routine.ID] = true
	}

	pillars := pillarsByScoreAsc(in.Scores, pool)
	for week := firstEmptyChallengeWeek(entries); week != 0; week = firstEmptyChallengeWeek(entries) {
		var routine *types.Routine
		for _, pillar := range pillars {
			if routine = popFirst(pool, pillar); routine != nil {
				break
			}
		}
		if routine == nil {
			break
		}
		entries = append(entries, s.weeklyChallengeEntry(in, routine, week))
		used[routine.ID] = true
	}
	return entries
}

// dedupWeeklyChallenges collapses weeks that collected more than one weekly
// challenge: BASICS-tagged entries win, otherwise the first placed entry
// stays.
func (s *Scheduler) dedupWeeklyChallenges(entries []*Entry) []*Entry {
	byWeek := map[int][]*Entry{}
	for _, entry := range entries {
		if entry.Category != types.CategoryWeeklyChallenge || len(entry.Weeks) == 0 {
			continue
		}
		week := entry.Weeks[0]
		byWeek[week] = append(byWeek[week], entry)
	}

	drop := map[*Entry]bool{}
	for _, group := range byWeek {
		if len(group) < 2 {
			continue
		}
		hasBasics := false
		for _, entry := range group {
			if entry.Routine.HasPackageTag("BASICS") {
				hasBasics = true
				break
			}
		}
		for i, entry := range group {
			if hasBasics {
				if !entry.Routine.HasPackageTag("BASICS") {
					drop[entry] = true
				}
			} else if i > 0 {
				drop[entry] = true
			}
		}
	}
	if len(drop) == 0 {
		return entries
	}
	out := entries[:0]
	for _, entry := range entries {
		if !drop[entry] {
			out = append(out, entry)
		}
	}
	return out
}

// scheduleMonthlyChallenge guarantees exactly one monthly challenge. A
// package-derived one is reused; otherwise the first available cognition
// candidate lands on week 1, day 1.
func (s *Scheduler) scheduleMonthlyChallenge(in Input, entries []*Entry, used map[int]bool) []*Entry {
	seen := false
	out := entries[:0]
	for _, entry := range entries {
		if entry.Category == types.CategoryMonthlyChallenge {
			if seen {
				continue
			}
			seen = true
		}
		out = append(out, entry)
	}
	entries = out
	if seen {
		return entries
	}

	pool := challengePool(in.Routines, used, types.CategoryMonthlyChallenge)
	routine := popFirst(pool, types.PillarCognitive)
	if routine == nil {
		s.log.Warn("No monthly challenge candidate available")
		return entries
	}
	entries = append(entries, s.monthlyChallengeEntry(in, routine))
	used[routine.ID] = true
	return entries
}

func (s *Scheduler) weeklyChallengeEntry(in Input, routine *types.Routine, week int) *Entry {
	expiration := endOfPlanDay(in.PlanStart, week, 7)
	return &Entry{
		Routine:    routine,
		Duration:   routine.Duration,
		Days:       []int{1},
		Weeks:      []int{week},
		Category:   types.CategoryWeeklyChallenge,
		Expiration: &expiration,
	}
}

func (s *Scheduler) monthlyChallengeEntry(in Input, routine *types.Routine) *Entry {
	expiration := endOfPlanDay(in.PlanStart, planWeeks, 7)
	return &Entry{
		Routine:    routine,
		Duration:   routine.Duration,
		Days:       []int{1},
		Weeks:      []int{1},
		Category:   types.CategoryMonthlyChallenge,
		Expiration: &expiration,
	}
}

// challengePool groups the remaining candidates of one category per pillar,
// preserving catalog order.
func challengePool(routines []*types.Routine, used map[int]bool, category types.ScheduleCategory) map[types.Pillar][]*types.Routine {
	pool := map[types.Pillar][]*types.Routine{}
	for _, routine := range routines {
		if routine.ScheduleCategory != category || used[routine.ID] || routine.RuleStatus == types.RuleStatusExcluded {
			continue
		}
		pool[routine.Pillar] = append(pool[routine.Pillar], routine)
	}
	return pool
}

// pillarsByScoreAsc orders the pillars that have candidates, worst health
// score first. Ties keep the fixed pillar enumeration order.
func pillarsByScoreAsc(scores types.HealthScores, pool map[types.Pillar][]*types.Routine) []types.Pillar {
	var pillars []types.Pillar
	for _, pillar := range types.AllPillars {
		if len(pool[pillar]) > 0 {
			pillars = append(pillars, pillar)
		}
	}
	sort.SliceStable(pillars, func(i, j int) bool {
		return scores[pillars[i]] < scores[pillars[j]]
	})
	return pillars
}

// popRoundRobin takes the next candidate starting from pillar index `from`,
// skipping drained pillars. Returns the routine and the index it came from.
func popRoundRobin(pool map[types.Pillar][]*types.Routine, pillars []types.Pillar, from int) (*types.Routine, int) {
	for i := 0; i < len(pillars); i++ {
		idx := (from + i) % len(pillars)
		if routine := popFirst(pool, pillars[idx]); routine != nil {
			return routine, idx
		}
	}
	return nil, 0
}

func popFirst(pool map[types.Pillar][]*types.Routine, pillar types.Pillar) *types.Routine {
	list := pool[pillar]
	if len(list) == 0 {
		return nil
	}
	routine := list[0]
	pool[pillar] = list[1:]
	return routine
}

func hasWeeklyChallengeForPillar(entries []*Entry, pillar types.Pillar) bool {
	for _, entry := range entries {
		if entry.Category == types.CategoryWeeklyChallenge && entry.Routine.Pillar == pillar {
			return true
		}
	}
	return false
}

// firstEmptyChallengeWeek returns the lowest week 1-4 without a weekly
// challenge, or 0 when all are taken.
func firstEmptyChallengeWeek(entries []*Entry) int {
	taken := map[int]bool{}
	for _, entry := range entries {
		if entry.Category != types.CategoryWeeklyChallenge {
			continue
		}
		for _, week := range entry.Weeks {
			taken[week] = true
		}
	}
	for week := 1; week <= planWeeks; week++ {
		if !taken[week] {
			return week
		}
	}
	return 0
}

// endOfPlanDay converts (week, day) grid coordinates into the first instant
// after that plan day, relative to the plan start.
func endOfPlanDay(planStart time.Time, week, day int) time.Time {
	return planStart.AddDate(0, 0, (week-1)*7+day)
}
