package pathmap

import (
	"slices"
	"strings"
)

// Separator splits path expressions into segments.
const Separator = "."

// Map is an insertion-ordered string-keyed container.
//
// Keys are iterated in the order they were first set. Overwriting an existing
// key keeps its original position. The zero value is not usable; call [New].
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]any)}
}

// FromPairs builds a Map from alternating key/value arguments.
// Keys must be strings; a trailing key without a value is set to nil.
//
//	m := pathmap.FromPairs("description", "Response is mocked")
func FromPairs(kv ...any) *Map {
	m := New()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		var value any
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		m.Set(key, value)
	}
	return m
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value stored at key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value at key, appending key if it is new.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
	return true
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// GetFromPath resolves a dot-separated path.
//
// It returns false when any segment is missing. An intermediate value that is
// not a *Map is treated as an empty container, so the rest of the path is
// simply unresolved rather than an error.
//
// TODO: the tolerant read hides callers that address into scalars; consider a
// strict variant that reports the offending segment.
func (m *Map) GetFromPath(path string) (any, bool) {
	return m.GetFromSegments(strings.Split(path, Separator)...)
}

// GetFromSegments is GetFromPath over explicit segments.
func (m *Map) GetFromSegments(segments ...string) (any, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	current := m
	var value any
	for _, segment := range segments {
		v, ok := current.Get(segment)
		if !ok {
			return nil, false
		}
		value = v
		if child, isMap := v.(*Map); isMap {
			current = child
		} else {
			current = New()
		}
	}
	return value, true
}

// NavigateOrCreate walks a dot-separated path, creating an empty *Map for each
// missing segment, and returns the container at the last segment.
//
// Unlike GetFromPath, writes never report missing keys. A segment that holds a
// non-map value is replaced by an empty *Map.
func (m *Map) NavigateOrCreate(path string) *Map {
	return m.NavigateOrCreateSegments(strings.Split(path, Separator)...)
}

// NavigateOrCreateSegments is NavigateOrCreate over explicit segments. Use it
// when a segment may itself contain the separator, such as a URL path.
func (m *Map) NavigateOrCreateSegments(segments ...string) *Map {
	current := m
	for _, segment := range segments {
		child, ok := current.values[segment].(*Map)
		if !ok {
			child = New()
			current.Set(segment, child)
		}
		current = child
	}
	return current
}

// SetFromPath stores value at a dot-separated path, creating intermediate
// containers as needed.
func (m *Map) SetFromPath(path string, value any) {
	segments := strings.Split(path, Separator)
	parent := m.NavigateOrCreateSegments(segments[:len(segments)-1]...)
	parent.Set(segments[len(segments)-1], value)
}

// DeleteFromPath removes the entry at a dot-separated path and reports
// whether it existed. Missing or non-map intermediates mean nothing to delete.
func (m *Map) DeleteFromPath(path string) bool {
	segments := strings.Split(path, Separator)
	current := m
	for _, segment := range segments[:len(segments)-1] {
		v, _ := current.Get(segment)
		child, ok := v.(*Map)
		if !ok {
			return false
		}
		current = child
	}
	return current.Delete(segments[len(segments)-1])
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys:   slices.Clone(m.keys),
		values: make(map[string]any, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies maps and slices; other values are returned as-is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return val
	}
}

// Merge copies every entry of src into m. Matching keys holding maps on both
// sides are merged recursively; everything else is replaced.
func (m *Map) Merge(src *Map) {
	src.Range(func(key string, value any) bool {
		if dst, ok := m.values[key].(*Map); ok {
			if srcMap, ok := value.(*Map); ok {
				dst.Merge(srcMap)
				return true
			}
		}
		m.Set(key, CloneValue(value))
		return true
	})
}
