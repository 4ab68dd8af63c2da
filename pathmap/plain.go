package pathmap

import "slices"

// Plain converts a tree of *Map and []any into map[string]any and []any.
// Key order is lost; use it only where consumers do not care about order.
func Plain(v any) any {
	switch val := v.(type) {
	case *Map:
		out := make(map[string]any, val.Len())
		val.Range(func(key string, value any) bool {
			out[key] = Plain(value)
			return true
		})
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	default:
		return val
	}
}

// FromPlain converts map[string]any values into *Map, sorting keys so the
// result is deterministic.
func FromPlain(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := New()
		for _, k := range keys {
			out.Set(k, FromPlain(val[k]))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = FromPlain(item)
		}
		return out
	default:
		return val
	}
}
