package shapes

import "csv2api/internal/record"

func init() {
	record.Register(record.Descriptor{
		Key:        "users",
		Label:      "Users",
		Endpoint:   "/api/v1/users",
		Required:   []string{"username", "password"},
		Unique:     []string{"username"},
		NameFields: []string{"username"},
		Build:      buildUser,
	})
}

// buildUser shapes a row into a user creation document. Fixed top-level
// fields get defaults when their columns are absent; place.* and contact.*
// columns fold into the corresponding nested objects.
func buildUser(row record.Row, opts record.BuildOptions) record.Doc {
	doc := record.Doc{
		"username": row["username"],
		"password": row["password"],
		"type":     "district-manager",
		"language": "en",
		"known":    true,
	}

	if v, ok := row["type"]; ok && v != "" {
		doc["type"] = v
	}
	if v, ok := row["lang"]; ok && v != "" {
		doc["language"] = v
	} else if v, ok := row["language"]; ok && v != "" {
		doc["language"] = v
	}
	if v, ok := row["known"]; ok && v != "" {
		doc["known"] = parseBool(v)
	}
	if v, ok := row["external_id"]; ok {
		doc["external_id"] = v
	}

	if place := foldNested(row, "place"); place != nil {
		doc["place"] = place
	} else if v, ok := row["place"]; ok && v != "" {
		doc["place"] = v
	} else if opts.PlaceID != "" {
		doc["place"] = opts.PlaceID
	}

	if contact := foldNested(row, "contact"); contact != nil {
		doc["contact"] = contact
	} else if v, ok := row["contact"]; ok && v != "" {
		doc["contact"] = v
	} else {
		contact := make(map[string]any)
		if v, ok := row["name"]; ok {
			contact["name"] = v
		}
		if v, ok := row["phone"]; ok {
			contact["phone"] = v
		}
		doc["contact"] = contact
	}

	return doc
}
