package types

// SuperRoutineTemplate describes a parent/aggregate activity with a fixed
// external id and default placement. Child durations sum into the parent,
// plus sets*BreakSecondsPerSet of break time per child.
type SuperRoutineTemplate struct {
	ExternalID         int    `json:"externalId" yaml:"externalId"`
	Name               string `json:"name" yaml:"name"`
	Pillar             Pillar `json:"pillar" yaml:"pillar"`
	ScheduleDays       []int  `json:"scheduleDays" yaml:"scheduleDays"`
	ScheduleWeeks      []int  `json:"scheduleWeeks" yaml:"scheduleWeeks"`
	BreakSecondsPerSet int    `json:"breakSecondsPerSet" yaml:"breakSecondsPerSet"`
}

// RoutinePackage is a curated bundle for one pillar: an optional
// super-routine with the tag quotas its children are selected against, plus
// fixed seed routines (daily routines and challenge candidates).
//
// Movement packages are keyed by intensity (derived from the daily time
// budget); other pillars match on the user's computed order.
type RoutinePackage struct {
	Name           string         `json:"name" yaml:"name"`
	Pillar         Pillar         `json:"pillar" yaml:"pillar"`
	Subcategory    string         `json:"subcategory" yaml:"subcategory"`
	Intensity      string         `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Orders         []int          `json:"orders,omitempty" yaml:"orders,omitempty"`
	SuperRoutineID int            `json:"superRoutineId,omitempty" yaml:"superRoutineId,omitempty"`
	TagCounts      map[string]int `json:"tagCounts,omitempty" yaml:"tagCounts,omitempty"`
	RoutineIDs     []int          `json:"routineIds,omitempty" yaml:"routineIds,omitempty"`
}
