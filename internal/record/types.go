// Package record defines the supported record types and the per-row
// transformation steps (remapping, validation, document construction) that
// run before a row is dispatched. It has no I/O dependencies and is safe to
// use from any frontend.
package record

import "time"

// Row is a single input record: source column name → cell value. A key
// absent from the map means the column was not present in the input (or was
// dropped by remapping), which is distinct from an empty value.
type Row map[string]string

// Doc is the JSON document sent as a request body. Nested objects are
// map[string]any values.
type Doc map[string]any

// BuildOptions carries run-level inputs into document construction.
type BuildOptions struct {
	// PlaceID is the global fallback for a document's place/parent
	// reference when the row carries none.
	PlaceID string

	// Now is the timestamp used for imported_date fields. The importer
	// sets it once per row; tests pin it.
	Now time.Time
}

// BuildFunc shapes a validated row into an output document.
type BuildFunc func(row Row, opts BuildOptions) Doc

// Descriptor defines one supported record type. Descriptors are immutable
// and registered at init time.
type Descriptor struct {
	// Key is the record type name given on the command line.
	Key string

	// Label is a short human-readable name for logs and help text.
	Label string

	// Endpoint is the creation path, e.g. "/api/v1/users".
	Endpoint string

	// Required lists column names that must be present in every row.
	Required []string

	// Unique lists column names whose values must not repeat within a run.
	Unique []string

	// UpdateKey, when set, names the column whose value addresses the
	// target resource (Endpoint + "/" + value). The column is consumed
	// for addressing and excluded from the body.
	UpdateKey string

	// NameFields lists document keys tried in order when tagging error
	// output with the record's natural identifier.
	NameFields []string

	// Build constructs the output document for this type.
	Build BuildFunc
}

// NaturalID returns the document's natural identifier for diagnostics,
// trying the descriptor's name fields in order.
func (d Descriptor) NaturalID(doc Doc) string {
	for _, field := range d.NameFields {
		if v, ok := doc[field].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
