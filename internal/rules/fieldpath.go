package rules

import "strings"

// LookupField resolves a dot-separated path against a JSON-like tree of
// maps, slices and scalars. When a segment lands on a list, the next segment
// is mapped over every element, so "tags.tag" over a list of tag objects
// yields the list of tag strings. Any miss resolves to nil.
func LookupField(value interface{}, path string) interface{} {
	if path == "" {
		return nil
	}
	current := value
	for _, segment := range strings.Split(path, ".") {
		current = stepField(current, segment)
		if current == nil {
			return nil
		}
	}
	return current
}

func stepField(value interface{}, segment string) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return v[segment]
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, el := range v {
			if sub := stepField(el, segment); sub != nil {
				out = append(out, sub)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
