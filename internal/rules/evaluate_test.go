package rules

import "testing"

func TestEvaluateOperators(t *testing.T) {
	cases := []struct {
		name     string
		value    interface{}
		operator string
		literal  interface{}
		want     bool
	}{
		{name: "gt_true", value: 5, operator: ">", literal: 3, want: true},
		{name: "gt_false", value: 3, operator: ">", literal: 3, want: false},
		{name: "gte_equal", value: 3, operator: ">=", literal: 3, want: true},
		{name: "lt_true", value: 2, operator: "<", literal: 3, want: true},
		{name: "lte_true", value: 3.0, operator: "<=", literal: 3, want: true},
		{name: "eq_numeric", value: 3, operator: "==", literal: 3.0, want: true},
		{name: "eq_numeric_string", value: "3", operator: "==", literal: 3, want: true},
		{name: "eq_string", value: "Ja", operator: "==", literal: "Ja", want: true},
		{name: "neq_string", value: "Nein", operator: "!=", literal: "Ja", want: true},
		{name: "includes_list", value: []string{"a", "b"}, operator: "includes", literal: "b", want: true},
		{name: "includes_list_any", value: []interface{}{"a", "b"}, operator: "includes", literal: "a", want: true},
		{name: "includes_list_miss", value: []string{"a"}, operator: "includes", literal: "b", want: false},
		{name: "includes_substring", value: "45-60 Minuten", operator: "includes", literal: "45-60", want: true},

		// Fail-closed cases: mismatches and unknown operators never raise.
		{name: "type_mismatch_gt", value: "abc", operator: ">", literal: 3, want: false},
		{name: "type_mismatch_eq", value: []string{"a"}, operator: "==", literal: "a", want: false},
		{name: "type_mismatch_neq", value: []string{"a"}, operator: "!=", literal: "a", want: false},
		{name: "unknown_operator", value: 3, operator: "~=", literal: 3, want: false},
		{name: "nil_value", value: nil, operator: "==", literal: 3, want: false},
		{name: "includes_non_string_literal", value: []string{"a"}, operator: "includes", literal: 3, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.value, tc.operator, tc.literal)
			if got != tc.want {
				t.Fatalf("Evaluate(%v, %q, %v)=%v, want %v", tc.value, tc.operator, tc.literal, got, tc.want)
			}
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	for i := 0; i < 10; i++ {
		if !Evaluate(5, ">", 3) {
			t.Fatalf("Evaluate(5, >, 3) changed result on call %d", i)
		}
	}
}

func TestLookupField(t *testing.T) {
	record := map[string]interface{}{
		"movementType": "STRENGTH",
		"tags": []interface{}{
			map[string]interface{}{"tag": "strength"},
			map[string]interface{}{"tag": "lowerbody"},
		},
		"goal": map[string]interface{}{"unit": "min"},
	}

	if got := LookupField(record, "movementType"); got != "STRENGTH" {
		t.Fatalf("movementType: got %v", got)
	}
	if got := LookupField(record, "goal.unit"); got != "min" {
		t.Fatalf("goal.unit: got %v", got)
	}

	tags, ok := LookupField(record, "tags.tag").([]interface{})
	if !ok || len(tags) != 2 {
		t.Fatalf("tags.tag: expected 2-element list, got %v", tags)
	}
	if tags[0] != "strength" || tags[1] != "lowerbody" {
		t.Fatalf("tags.tag: got %v", tags)
	}

	if got := LookupField(record, "missing"); got != nil {
		t.Fatalf("missing field: got %v, want nil", got)
	}
	if got := LookupField(record, "goal.missing"); got != nil {
		t.Fatalf("missing nested field: got %v, want nil", got)
	}
	if got := LookupField(nil, "anything"); got != nil {
		t.Fatalf("nil tree: got %v, want nil", got)
	}
}
