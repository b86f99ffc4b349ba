package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	LogicAnd = "and"
	LogicOr  = "or"
)

// Condition is a leaf predicate or a logic group, parsed once from the rule
// document before evaluation.
type Condition struct {
	// Leaf fields.
	Field    string      `json:"field,omitempty"`
	Operator string      `json:"operator,omitempty"`
	Value    interface{} `json:"value,omitempty"`

	// Group fields. A non-empty Logic marks a group.
	Logic string      `json:"logic,omitempty"`
	Rules []Condition `json:"rules,omitempty"`
}

func (c Condition) IsGroup() bool {
	return c.Logic != ""
}

// UnmarshalJSON accepts both shapes: {"field","operator","value"} leaves and
// {"logic","rules":[...]} groups, nested to any depth.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Field    string            `json:"field"`
		Operator string            `json:"operator"`
		Value    interface{}       `json:"value"`
		Logic    string            `json:"logic"`
		Rules    []json.RawMessage `json:"rules"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Logic != "" {
		logic := strings.ToLower(raw.Logic)
		if logic != LogicAnd && logic != LogicOr {
			return fmt.Errorf("unknown condition logic %q", raw.Logic)
		}
		c.Logic = logic
		c.Rules = make([]Condition, 0, len(raw.Rules))
		for _, childRaw := range raw.Rules {
			var child Condition
			if err := json.Unmarshal(childRaw, &child); err != nil {
				return err
			}
			c.Rules = append(c.Rules, child)
		}
		return nil
	}
	c.Field = raw.Field
	c.Operator = raw.Operator
	c.Value = raw.Value
	return nil
}

// RuleAction names a routine field (dot-path into the raw catalog record), a
// literal to match and, for inclusion rules, a weight. Weight 0 counts as 1.
type RuleAction struct {
	Field  string      `json:"field"`
	Value  interface{} `json:"value"`
	Weight int         `json:"weight,omitempty"`
}

type Rule struct {
	Name      string       `json:"name"`
	Pillar    Pillar       `json:"pillar"`
	Condition Condition    `json:"condition"`
	Actions   []RuleAction `json:"actions"`
}

// RuleSet is the external rule document: global exclusion rules plus
// per-pillar inclusion rules.
type RuleSet struct {
	ExclusionRules []Rule           `json:"exclusion_rules"`
	InclusionRules map[Pillar][]Rule `json:"inclusion_rules"`
}

func ParseRuleSet(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse rule set: %w", err)
	}
	if rs.InclusionRules == nil {
		rs.InclusionRules = map[Pillar][]Rule{}
	}
	return &rs, nil
}
