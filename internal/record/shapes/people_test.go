package shapes

import (
	"testing"

	"csv2api/internal/record"
)

func TestBuildPerson_PassThroughAndIdentifier(t *testing.T) {
	row := record.Row{
		"uuid":  "abc",
		"name":  "Alice",
		"phone": "+123",
	}
	doc := buildPerson(row, record.BuildOptions{Now: testNow})

	if doc["_id"] != "abc" {
		t.Errorf("_id = %v, want abc", doc["_id"])
	}
	if _, ok := doc["uuid"]; ok {
		t.Error("document should not contain a literal uuid key")
	}
	if doc["name"] != "Alice" || doc["phone"] != "+123" {
		t.Errorf("pass-through fields missing: %v", doc)
	}
	if doc["type"] != "person" {
		t.Errorf("type = %v, want person", doc["type"])
	}
	if doc["imported_date"] != "2024-03-01T12:00:00Z" {
		t.Errorf("imported_date = %v", doc["imported_date"])
	}
}

func TestBuildPerson_PlaceColumnsFold(t *testing.T) {
	row := record.Row{
		"name":       "Alice",
		"place.name": "Clinic A",
		"place.uuid": "p1",
	}
	doc := buildPerson(row, record.BuildOptions{PlaceID: "ignored"})

	place, ok := doc["place"].(map[string]any)
	if !ok {
		t.Fatalf("place = %T, want nested object", doc["place"])
	}
	if place["name"] != "Clinic A" || place["_id"] != "p1" {
		t.Errorf("place = %v", place)
	}
	if _, ok := doc["place.name"]; ok {
		t.Error("dotted columns should not surface as top-level fields")
	}
}

func TestBuildPerson_PlaceFallbacks(t *testing.T) {
	doc := buildPerson(record.Row{"name": "A", "place": "p5"}, record.BuildOptions{PlaceID: "global"})
	if doc["place"] != "p5" {
		t.Errorf("place = %v, want p5", doc["place"])
	}

	doc = buildPerson(record.Row{"name": "A"}, record.BuildOptions{PlaceID: "global"})
	if doc["place"] != "global" {
		t.Errorf("place = %v, want global", doc["place"])
	}

	doc = buildPerson(record.Row{"name": "A"}, record.BuildOptions{})
	if _, ok := doc["place"]; ok {
		t.Error("place should be absent without any source")
	}
}

func TestBuildPerson_DeepDotsNotInterpreted(t *testing.T) {
	// Only the first dot is significant.
	row := record.Row{"name": "A", "place.contact.name": "B"}
	doc := buildPerson(row, record.BuildOptions{})

	place, ok := doc["place"].(map[string]any)
	if !ok {
		t.Fatalf("place = %T, want nested object", doc["place"])
	}
	if place["contact.name"] != "B" {
		t.Errorf("place = %v, want contact.name key kept literal", place)
	}
}

func TestPeopleDescriptorRegistered(t *testing.T) {
	desc, ok := record.Get("people")
	if !ok {
		t.Fatal("people type not registered")
	}
	if desc.Endpoint != "/api/v1/people" {
		t.Errorf("Endpoint = %q", desc.Endpoint)
	}
	if len(desc.Required) != 1 || desc.Required[0] != "name" {
		t.Errorf("Required = %v, want [name]", desc.Required)
	}
}
