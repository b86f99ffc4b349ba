package types

import "strings"

type ScheduleCategory string

const (
	CategoryDailyRoutine     ScheduleCategory = "DAILY_ROUTINE"
	CategoryWeeklyRoutine    ScheduleCategory = "WEEKLY_ROUTINE"
	CategoryDailyChallenge   ScheduleCategory = "DAILY_CHALLENGE"
	CategoryWeeklyChallenge  ScheduleCategory = "WEEKLY_CHALLENGE"
	CategoryMonthlyChallenge ScheduleCategory = "MONTHLY_CHALLENGE"
)

type RuleStatus string

const (
	RuleStatusNone     RuleStatus = "no_rule_applied"
	RuleStatusIncluded RuleStatus = "included"
	RuleStatusExcluded RuleStatus = "excluded"
)

type Tag struct {
	Tag string `json:"tag" yaml:"tag"`
}

// Routine is one schedulable catalog entry. Rule evaluation annotates
// RuleStatus/ScoreRules/ScoreRulesExplanation in place; everything else is
// read-only after loading. Raw keeps the untyped catalog record so rule
// actions can resolve arbitrary dot-paths (e.g. "tags.tag") against it.
type Routine struct {
	ID               int              `json:"id" yaml:"id"`
	UniqueID         int              `json:"uniqueId" yaml:"uniqueId"`
	Name             string           `json:"name" yaml:"name"`
	Pillar           Pillar           `json:"pillar" yaml:"pillar"`
	Tags             []Tag            `json:"tags" yaml:"tags"`
	MuscleGroups     string           `json:"muscleGroups" yaml:"muscleGroups"`
	MovementType     string           `json:"movementType" yaml:"movementType"`
	ScheduleCategory ScheduleCategory `json:"scheduleCategory" yaml:"scheduleCategory"`
	Duration         float64          `json:"durationCalculated" yaml:"durationCalculated"`
	Amount           float64          `json:"amount" yaml:"amount"`
	Unit             string           `json:"unit" yaml:"unit"`
	Sets             int              `json:"sets" yaml:"sets"`
	Equipment        string           `json:"equipment" yaml:"equipment"`
	DisplayForOrder  string           `json:"displayForOrder" yaml:"displayForOrder"`
	Order            int              `json:"order" yaml:"order"`
	Variation        string           `json:"variation" yaml:"variation"`
	PackageTags      []string         `json:"packageTags" yaml:"packageTags"`

	Raw map[string]interface{} `json:"-" yaml:"-"`

	RuleStatus            RuleStatus `json:"-" yaml:"-"`
	ScoreRules            int        `json:"-" yaml:"-"`
	ScoreRulesExplanation string     `json:"-" yaml:"-"`
}

func (r *Routine) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		names = append(names, t.Tag)
	}
	return names
}

func (r *Routine) HasTag(name string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t.Tag, name) {
			return true
		}
	}
	return false
}

func (r *Routine) HasPackageTag(name string) bool {
	for _, t := range r.PackageTags {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// PrimaryMuscle parses the leading entry of a "muscle (role), muscle (role)"
// string. Empty input yields "".
func (r *Routine) PrimaryMuscle() string {
	first := r.MuscleGroups
	if idx := strings.Index(first, ","); idx >= 0 {
		first = first[:idx]
	}
	if idx := strings.Index(first, "("); idx >= 0 {
		first = first[:idx]
	}
	return strings.ToLower(strings.TrimSpace(first))
}

// Exclude marks the routine excluded. Exclusions are monotonic: the rule
// engine and the gates never re-include an excluded routine.
func (r *Routine) Exclude(reason string) {
	r.RuleStatus = RuleStatusExcluded
	r.ScoreRules = 0
	if reason != "" {
		if r.ScoreRulesExplanation != "" {
			r.ScoreRulesExplanation += " "
		}
		r.ScoreRulesExplanation += reason
	}
}

// Clone returns a deep copy so one catalog snapshot can serve concurrent
// scheduling runs without sharing rule annotations.
func (r *Routine) Clone() *Routine {
	cp := *r
	cp.Tags = append([]Tag(nil), r.Tags...)
	cp.PackageTags = append([]string(nil), r.PackageTags...)
	if r.Raw != nil {
		cp.Raw = cloneTree(r.Raw).(map[string]interface{})
	}
	return &cp
}

func cloneTree(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, el := range t {
			out[k] = cloneTree(el)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, el := range t {
			out[i] = cloneTree(el)
		}
		return out
	default:
		return v
	}
}
