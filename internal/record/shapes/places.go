package shapes

import (
	"strings"

	"csv2api/internal/record"
)

// The four place levels share one builder and differ only in the fixed
// document-type tag stamped on the output.
func init() {
	registerPlaceLevel("places-level-0", "national_office", "National offices")
	registerPlaceLevel("places-level-1", "district_hospital", "District hospitals")
	registerPlaceLevel("places-level-2", "health_center", "Health centers")
	registerPlaceLevel("places-level-3", "clinic", "Clinics")

	record.Register(record.Descriptor{
		Key:        "places-update",
		Label:      "Place updates",
		Endpoint:   "/api/v1/places",
		Required:   []string{"uuid"},
		UpdateKey:  "uuid",
		NameFields: []string{"name"},
		Build:      buildPlaceUpdate,
	})
}

func registerPlaceLevel(key, docType, label string) {
	record.Register(record.Descriptor{
		Key:        key,
		Label:      label,
		Endpoint:   "/api/v1/places",
		Required:   []string{"name"},
		Unique:     []string{"name"},
		NameFields: []string{"name", "_id"},
		Build:      buildPlace(docType),
	})
}

// buildPlace returns the builder for one hierarchy level. Columns pass
// through as top-level fields except uuid (the identifier), parent (the
// parent reference), and contact.*/parent.* columns (nested objects).
func buildPlace(docType string) record.BuildFunc {
	return func(row record.Row, opts record.BuildOptions) record.Doc {
		doc := record.Doc{}

		for col, v := range row {
			switch {
			case col == "uuid":
				doc["_id"] = v
			case col == "parent", strings.HasPrefix(col, "parent."):
				// Resolved below.
			case strings.HasPrefix(col, "contact."):
				// Folded below.
			default:
				doc[col] = v
			}
		}

		if contact := foldNested(row, "contact"); contact != nil {
			doc["contact"] = contact
		}

		if parent := foldNested(row, "parent"); parent != nil {
			doc["parent"] = parent
		} else if v, ok := row["parent"]; ok && v != "" {
			doc["parent"] = v
		} else if opts.PlaceID != "" {
			doc["parent"] = opts.PlaceID
		}

		doc["type"] = docType
		doc["imported_date"] = importedDate(opts)

		return doc
	}
}

// buildPlaceUpdate shapes a row into a flat partial-update body. The uuid
// column addresses the target resource and is excluded from the body.
func buildPlaceUpdate(row record.Row, _ record.BuildOptions) record.Doc {
	doc := make(record.Doc, len(row))
	for col, v := range row {
		if col == "uuid" {
			continue
		}
		doc[col] = v
	}
	return doc
}
