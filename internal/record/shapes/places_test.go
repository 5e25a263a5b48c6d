package shapes

import (
	"testing"

	"csv2api/internal/record"
)

func TestBuildPlace_Shape(t *testing.T) {
	build := buildPlace("clinic")
	row := record.Row{
		"uuid":         "pl1",
		"name":         "Clinic A",
		"contact.name": "Amanda",
		"contact.uuid": "c1",
		"parent.name":  "HC 4",
		"parent.uuid":  "hc4",
		"notes":        "riverside",
	}
	doc := build(row, record.BuildOptions{Now: testNow})

	if doc["_id"] != "pl1" {
		t.Errorf("_id = %v, want pl1", doc["_id"])
	}
	if _, ok := doc["uuid"]; ok {
		t.Error("document should not contain a literal uuid key")
	}
	if doc["name"] != "Clinic A" || doc["notes"] != "riverside" {
		t.Errorf("pass-through fields missing: %v", doc)
	}
	if doc["type"] != "clinic" {
		t.Errorf("type = %v, want clinic", doc["type"])
	}
	if doc["imported_date"] != "2024-03-01T12:00:00Z" {
		t.Errorf("imported_date = %v", doc["imported_date"])
	}

	contact, ok := doc["contact"].(map[string]any)
	if !ok {
		t.Fatalf("contact = %T, want object", doc["contact"])
	}
	if contact["name"] != "Amanda" || contact["_id"] != "c1" {
		t.Errorf("contact = %v", contact)
	}

	parent, ok := doc["parent"].(map[string]any)
	if !ok {
		t.Fatalf("parent = %T, want object", doc["parent"])
	}
	if parent["name"] != "HC 4" || parent["_id"] != "hc4" {
		t.Errorf("parent = %v", parent)
	}
}

func TestBuildPlace_ParentFallbacks(t *testing.T) {
	build := buildPlace("health_center")

	doc := build(record.Row{"name": "HC", "parent": "d1"}, record.BuildOptions{PlaceID: "global"})
	if doc["parent"] != "d1" {
		t.Errorf("parent = %v, want d1", doc["parent"])
	}

	doc = build(record.Row{"name": "HC"}, record.BuildOptions{PlaceID: "global"})
	if doc["parent"] != "global" {
		t.Errorf("parent = %v, want global", doc["parent"])
	}

	doc = build(record.Row{"name": "HC"}, record.BuildOptions{})
	if _, ok := doc["parent"]; ok {
		t.Error("parent should be absent without any source")
	}
}

func TestPlaceLevelTags(t *testing.T) {
	tests := []struct {
		key string
		tag string
	}{
		{"places-level-0", "national_office"},
		{"places-level-1", "district_hospital"},
		{"places-level-2", "health_center"},
		{"places-level-3", "clinic"},
	}

	for _, tt := range tests {
		desc, ok := record.Get(tt.key)
		if !ok {
			t.Fatalf("%s not registered", tt.key)
		}
		doc := desc.Build(record.Row{"name": "X"}, record.BuildOptions{Now: testNow})
		if doc["type"] != tt.tag {
			t.Errorf("%s: type = %v, want %s", tt.key, doc["type"], tt.tag)
		}
		if desc.Endpoint != "/api/v1/places" {
			t.Errorf("%s: Endpoint = %q", tt.key, desc.Endpoint)
		}
	}
}

func TestBuildPlaceUpdate_FlatBodyWithoutUUID(t *testing.T) {
	row := record.Row{
		"uuid":       "pl1",
		"name":       "Renamed",
		"place.note": "kept literal",
	}
	doc := buildPlaceUpdate(row, record.BuildOptions{Now: testNow})

	if _, ok := doc["uuid"]; ok {
		t.Error("uuid must not appear in the update body")
	}
	if doc["name"] != "Renamed" {
		t.Errorf("name = %v", doc["name"])
	}
	// Update bodies are flat partial updates: no folding, no defaults.
	if doc["place.note"] != "kept literal" {
		t.Errorf("dotted column should pass through unchanged: %v", doc)
	}
	if _, ok := doc["imported_date"]; ok {
		t.Error("update body should not gain imported_date")
	}
}

func TestPlacesUpdateDescriptor(t *testing.T) {
	desc, ok := record.Get("places-update")
	if !ok {
		t.Fatal("places-update not registered")
	}
	if desc.UpdateKey != "uuid" {
		t.Errorf("UpdateKey = %q, want uuid", desc.UpdateKey)
	}
	if len(desc.Required) != 1 || desc.Required[0] != "uuid" {
		t.Errorf("Required = %v, want [uuid]", desc.Required)
	}
}
