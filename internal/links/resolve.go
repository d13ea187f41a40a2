package links

import (
	"fmt"
	"strings"
)

// resolveFieldPath looks up a declared link field on a raw element record.
//
// Paths come in two syntaxes: dotted paths ("motivation.supports-goals")
// descend through nested mappings, while "x-" extension keys are direct
// top-level lookups even though they may contain no dots. A missing key or
// an intermediate value that is not a mapping is simply "no value", never
// an error; most elements legitimately lack most optional link fields.
func resolveFieldPath(record map[string]any, path string) (any, bool) {
	if strings.HasPrefix(path, "x-") {
		v, ok := record[path]
		return v, ok
	}

	parts := strings.Split(path, ".")
	var current any = record
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// targetIDs normalizes a resolved link value into a list of target ids,
// reporting whether the raw value was a list. Scalars are rendered with
// fmt.Sprint so numeric ids survive YAML's type inference.
func targetIDs(value any) (ids []string, wasList bool) {
	switch v := value.(type) {
	case []any:
		ids = make([]string, 0, len(v))
		for _, entry := range v {
			ids = append(ids, asID(entry))
		}
		return ids, true
	case []string:
		return append([]string(nil), v...), true
	default:
		return []string{asID(v)}, false
	}
}

func asID(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
