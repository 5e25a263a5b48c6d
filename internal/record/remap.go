package record

import (
	"fmt"
	"strings"
)

// MapPair renames one source column to a target column.
type MapPair struct {
	Source string
	Target string
}

// ParseMapping parses a comma-separated list of source[:target] pairs.
// A pair without a target keeps the source name. Names are lowercased so
// they match normalized input headers; empty names are an error. A list
// with no pairs is the nil (pass-through) mapping.
func ParseMapping(s string) ([]MapPair, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	pairs := make([]MapPair, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		source, target, found := strings.Cut(part, ":")
		source = strings.ToLower(strings.TrimSpace(source))
		target = strings.ToLower(strings.TrimSpace(target))
		if !found {
			target = source
		}
		if source == "" || target == "" {
			return nil, fmt.Errorf("invalid column mapping %q, expected source[:target]", part)
		}

		pairs = append(pairs, MapPair{Source: source, Target: target})
	}

	if len(pairs) == 0 {
		return nil, nil
	}
	return pairs, nil
}

// Remap produces a new row containing only the mapping's target names, each
// holding the value found at the corresponding source column. A source
// column absent from the input leaves the target absent, never an error.
// An empty mapping passes the row through unchanged.
func Remap(row Row, pairs []MapPair) Row {
	if len(pairs) == 0 {
		return row
	}

	out := make(Row, len(pairs))
	for _, p := range pairs {
		if v, ok := row[p.Source]; ok {
			out[p.Target] = v
		}
	}
	return out
}
