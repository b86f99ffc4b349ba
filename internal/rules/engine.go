package rules

import (
	"fmt"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/types"
)

// ExclusionHit records one exclusion action that fired, for the per-run
// audit trail.
type ExclusionHit struct {
	RuleName string
	Field    string
	Value    interface{}
}

type InclusionHit struct {
	RuleName  string
	RoutineID int
	Weight    int
}

// Audit is the per-invocation diagnostic log of rule activity. It replaces
// process-global hit sets so concurrent runs stay independent.
type Audit struct {
	Exclusions []ExclusionHit
	Inclusions []InclusionHit
}

type Engine struct {
	log *logger.Logger
}

func NewEngine(baseLog *logger.Logger) *Engine {
	return &Engine{log: baseLog.With("component", "RuleEngine")}
}

// lookupAnswer finds a question's answer, preferring the given pillar's
// section and falling back to the first other section containing the key,
// scanned in fixed pillar order.
func lookupAnswer(field string, pillar types.Pillar, userData types.UserData) (interface{}, bool) {
	if section, ok := userData[pillar]; ok {
		if v, ok := section[field]; ok {
			return v, true
		}
	}
	for _, p := range types.AllPillars {
		if p == pillar {
			continue
		}
		if section, ok := userData[p]; ok {
			if v, ok := section[field]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// EvalCondition evaluates a condition tree against the given pillar's answer
// section (with cross-pillar fallback). Missing answers and unknown logic
// values fail closed.
func (e *Engine) EvalCondition(cond types.Condition, pillar types.Pillar, userData types.UserData) bool {
	if cond.IsGroup() {
		switch cond.Logic {
		case types.LogicAnd:
			for _, child := range cond.Rules {
				if !e.EvalCondition(child, pillar, userData) {
					return false
				}
			}
			return len(cond.Rules) > 0
		case types.LogicOr:
			for _, child := range cond.Rules {
				if e.EvalCondition(child, pillar, userData) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	answer, ok := lookupAnswer(cond.Field, pillar, userData)
	if !ok {
		return false
	}
	return Evaluate(answer, cond.Operator, cond.Value)
}

// ApplyExclusionRules marks every routine matched by a firing exclusion
// action as excluded. Exclusions are monotonic: nothing downstream
// re-includes an excluded routine.
func (e *Engine) ApplyExclusionRules(userData types.UserData, ruleList []types.Rule, routines []*types.Routine, audit *Audit) {
	for _, rule := range ruleList {
		if !e.EvalCondition(rule.Condition, rule.Pillar, userData) {
			continue
		}
		for _, action := range rule.Actions {
			hit := false
			for _, routine := range routines {
				fieldValue := LookupField(routine.Raw, action.Field)
				if !actionMatches(fieldValue, action.Value) {
					continue
				}
				routine.Exclude(fmt.Sprintf("excluded by rule %q (%s=%v).", rule.Name, action.Field, action.Value))
				hit = true
			}
			if hit && audit != nil {
				audit.Exclusions = append(audit.Exclusions, ExclusionHit{
					RuleName: rule.Name,
					Field:    action.Field,
					Value:    action.Value,
				})
			}
		}
	}
}

// ApplyInclusionRules accumulates weight and explanation on every
// non-excluded routine of the pillar matched by a firing inclusion action.
// Weights sum additively across rules; a zero weight counts as 1.
func (e *Engine) ApplyInclusionRules(pillar types.Pillar, ruleList []types.Rule, routines []*types.Routine, userData types.UserData, audit *Audit) {
	for _, routine := range routines {
		if routine.Pillar != pillar || routine.RuleStatus == types.RuleStatusExcluded {
			continue
		}
		for _, rule := range ruleList {
			if !e.EvalCondition(rule.Condition, rule.Pillar, userData) {
				continue
			}
			for _, action := range rule.Actions {
				fieldValue := LookupField(routine.Raw, action.Field)
				if !actionMatches(fieldValue, action.Value) {
					continue
				}
				weight := action.Weight
				if weight == 0 {
					weight = 1
				}
				routine.ScoreRules += weight
				if routine.ScoreRulesExplanation != "" {
					routine.ScoreRulesExplanation += " "
				}
				routine.ScoreRulesExplanation += fmt.Sprintf("rule %q matched %s=%v (+%d).", rule.Name, action.Field, action.Value, weight)
				routine.RuleStatus = types.RuleStatusIncluded
				if audit != nil {
					audit.Inclusions = append(audit.Inclusions, InclusionHit{
						RuleName:  rule.Name,
						RoutineID: routine.ID,
						Weight:    weight,
					})
				}
			}
		}
	}
}

// actionMatches tests a resolved routine field against an action literal:
// equality for scalars, membership for list-valued fields.
func actionMatches(fieldValue, want interface{}) bool {
	if fieldValue == nil {
		return false
	}
	switch v := fieldValue.(type) {
	case []interface{}:
		for _, el := range v {
			if looseEqual(el, want) {
				return true
			}
		}
		return false
	case []string:
		for _, el := range v {
			if looseEqual(el, want) {
				return true
			}
		}
		return false
	default:
		return looseEqual(fieldValue, want)
	}
}
