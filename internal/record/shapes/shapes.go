// Package shapes registers the supported record types and their document
// builders. Each builder turns a validated row into the JSON document posted
// to the target API, applying that type's defaults and nesting rules.
//
// Input columns of the form "prefix.field" fold into a nested sub-object on
// the output document. Only the first dot is significant; deeper dots stay
// in the field name. Within any nested object (and at the top level of the
// person and place shapes) a column literally named "uuid" maps to the
// identifier key "_id" rather than a literal "uuid" key.
package shapes

import (
	"strings"
	"time"

	"csv2api/internal/record"
)

// foldNested collects prefix.field columns from row into a nested object,
// mapping the uuid sub-field to _id. Returns nil if no such columns exist.
func foldNested(row record.Row, prefix string) map[string]any {
	var nested map[string]any
	p := prefix + "."
	for col, v := range row {
		if !strings.HasPrefix(col, p) || len(col) == len(p) {
			continue
		}
		if nested == nil {
			nested = make(map[string]any)
		}
		field := col[len(p):]
		if field == "uuid" {
			nested["_id"] = v
		} else {
			nested[field] = v
		}
	}
	return nested
}

// parseBool reads a permissive boolean cell. Unrecognized values lean true,
// matching the user shape's known-by-default behavior.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "false", "f", "no", "n", "0":
		return false
	default:
		return true
	}
}

// importedDate formats the row's creation timestamp as ISO-8601.
func importedDate(opts record.BuildOptions) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return now.Format(time.RFC3339)
}
