package rules

import (
	"strconv"
	"strings"
)

// Evaluate applies a single predicate operator to a user answer and a rule
// literal. It is a pure function and fails closed: type mismatches and
// unknown operators yield false instead of an error, so a malformed rule
// silently fails to match rather than aborting the run.
func Evaluate(userValue interface{}, operator string, literal interface{}) bool {
	switch operator {
	case ">", ">=", "<", "<=":
		a, aok := toFloat(userValue)
		b, bok := toFloat(literal)
		if !aok || !bok {
			return false
		}
		switch operator {
		case ">":
			return a > b
		case ">=":
			return a >= b
		case "<":
			return a < b
		default:
			return a <= b
		}
	case "==":
		return looseEqual(userValue, literal)
	case "!=":
		eq, ok := comparable2(userValue, literal)
		if !ok {
			return false
		}
		return !eq
	case "includes":
		return includes(userValue, literal)
	default:
		return false
	}
}

// looseEqual compares numerically when both sides coerce to numbers,
// otherwise as strings when both sides are strings.
func looseEqual(a, b interface{}) bool {
	eq, ok := comparable2(a, b)
	return ok && eq
}

func comparable2(a, b interface{}) (equal bool, ok bool) {
	if fa, aok := toFloat(a); aok {
		if fb, bok := toFloat(b); bok {
			return fa == fb, true
		}
		return false, false
	}
	sa, aok := a.(string)
	sb, bok := b.(string)
	if aok && bok {
		return sa == sb, true
	}
	return false, false
}

// includes is a membership test: list-of-strings contains the literal, or the
// answer string contains the literal as a substring.
func includes(userValue, literal interface{}) bool {
	want, ok := literal.(string)
	if !ok {
		return false
	}
	switch v := userValue.(type) {
	case string:
		return strings.Contains(v, want)
	case []string:
		for _, el := range v {
			if el == want {
				return true
			}
		}
	case []interface{}:
		for _, el := range v {
			if s, sok := el.(string); sok && s == want {
				return true
			}
		}
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
