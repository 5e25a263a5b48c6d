package shapes

import (
	"strings"

	"csv2api/internal/record"
)

func init() {
	record.Register(record.Descriptor{
		Key:        "people",
		Label:      "People",
		Endpoint:   "/api/v1/people",
		Required:   []string{"name"},
		NameFields: []string{"name", "_id"},
		Build:      buildPerson,
	})
}

// buildPerson shapes a row into a person creation document. Every column
// passes through as a same-named top-level field except uuid (the
// identifier) and place.* columns (the nested place object).
func buildPerson(row record.Row, opts record.BuildOptions) record.Doc {
	doc := record.Doc{}

	for col, v := range row {
		switch {
		case col == "uuid":
			doc["_id"] = v
		case col == "place", strings.HasPrefix(col, "place."):
			// Resolved below.
		default:
			doc[col] = v
		}
	}

	if place := foldNested(row, "place"); place != nil {
		doc["place"] = place
	} else if v, ok := row["place"]; ok && v != "" {
		doc["place"] = v
	} else if opts.PlaceID != "" {
		doc["place"] = opts.PlaceID
	}

	doc["type"] = "person"
	doc["imported_date"] = importedDate(opts)

	return doc
}
