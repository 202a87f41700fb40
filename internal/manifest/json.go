package manifest

// Helpers over the parsed-JSON value model (map[string]any, []any,
// string, float64, bool, nil).

// deepCopy clones scalars, arrays and objects so canonical output and
// passthrough extra fields never alias the input document.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}

// deepCopyMap is deepCopy specialized for the top-level manifest object.
func deepCopyMap(m map[string]any) map[string]any {
	return deepCopy(m).(map[string]any)
}

// asArray normalizes a scalar-or-array value to an array. A nil value
// yields nil.
func asArray(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// stringValues extracts the string elements of a scalar-or-array value,
// dropping anything that is not a string.
func stringValues(v any) []string {
	var out []string
	for _, e := range asArray(v) {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// copyExtra copies every key of src not listed in known into a fresh map,
// deep-copying the values. Returns nil when nothing is left over, so
// untouched entities carry no empty passthrough map.
func copyExtra(src map[string]any, known map[string]bool) map[string]any {
	var extra map[string]any
	for k, v := range src {
		if known[k] {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = deepCopy(v)
	}
	return extra
}
