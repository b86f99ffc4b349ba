package types

import "time"

// PlanPeriodDays is the fixed action-plan cycle length.
const PlanPeriodDays = 28

// ScheduledRoutineEntry is one wire-format line of the action plan. Durations
// are integers; scheduleDays is a subset of 1-7 and scheduleWeeks of 1-4.
type ScheduledRoutineEntry struct {
	ScheduledID        int              `json:"scheduledId"`
	Pillar             Pillar           `json:"pillar"`
	RoutineID          int              `json:"routineId"`
	RoutineUniqueID    int              `json:"routineUniqueId"`
	Name               string           `json:"name"`
	DurationCalculated int              `json:"durationCalculated"`
	Amount             float64          `json:"amount,omitempty"`
	Unit               string           `json:"unit,omitempty"`
	Sets               int              `json:"sets,omitempty"`
	Goal               *Goal            `json:"goal,omitempty"`
	ScheduleDays       []int            `json:"scheduleDays"`
	ScheduleWeeks      []int            `json:"scheduleWeeks"`
	ScheduleCategory   ScheduleCategory `json:"scheduleCategory"`
	ParentRoutineID    int              `json:"parentRoutineId,omitempty"`
	Expiration         *time.Time       `json:"expiration,omitempty"`
}

type Goal struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type ActionPlanData struct {
	ActionPlanUniqueID         string                  `json:"actionPlanUniqueId"`
	PreviousActionPlanUniqueID string                  `json:"previousActionPlanUniqueId,omitempty"`
	AccountID                  string                  `json:"accountId"`
	PeriodInDays               int                     `json:"periodInDays"`
	Gender                     string                  `json:"gender,omitempty"`
	TotalDailyTimeInMins       int                     `json:"totalDailyTimeInMins"`
	Routines                   []ScheduledRoutineEntry `json:"routines"`
}

// ActionPlanDocument is the envelope handed to persistence.
type ActionPlanDocument struct {
	Data ActionPlanData `json:"data"`
}

type PillarScoreReport struct {
	Pillar              Pillar  `json:"pillar"`
	Score               float64 `json:"score"`
	ScoreInterpretation string  `json:"scoreInterpretation"`
	Rating              Rating  `json:"rating"`
}

type HealthReportData struct {
	TotalScore   float64             `json:"totalScore"`
	AccountID    string              `json:"accountId"`
	PillarScores []PillarScoreReport `json:"pillarScores"`
}

type HealthReportDocument struct {
	Data HealthReportData `json:"data"`
}
