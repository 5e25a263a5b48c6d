package record

// validate.go enforces the two row-level constraints checked before a row is
// shaped into a document:
//
//  1. Required fields: every column the descriptor names must be present in
//     the row. Presence is key presence, not non-emptiness; a column dropped
//     by remapping or missing from the header is the violation.
//  2. Uniqueness: values of constrained columns must not repeat within a run.
//
// Both violations are fatal to the run: the dataset is assumed collectively
// valid or not, so the first bad row ends the import rather than being
// skipped.

import "fmt"

// MissingFieldError reports a required column absent from a row. Row is the
// offending row, kept for diagnostic output.
type MissingFieldError struct {
	Field string
	Row   Row
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// DuplicateValueError reports a uniqueness-constrained value seen twice in
// one run. Row is the offending row, kept for diagnostic output.
type DuplicateValueError struct {
	Field string
	Value string
	Row   Row
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("duplicate value %q for unique field %q", e.Value, e.Field)
}

// Index tracks already-seen values for uniqueness-constrained fields,
// scoped to a single run.
type Index map[string]map[string]struct{}

// NewIndex creates an empty uniqueness index.
func NewIndex() Index {
	return make(Index)
}

// Validate checks row against the descriptor's required-field and
// uniqueness constraints, recording constrained values in idx. The first
// violation is returned; a non-nil error ends the run.
func Validate(row Row, desc Descriptor, idx Index) error {
	for _, field := range desc.Required {
		if _, ok := row[field]; !ok {
			return &MissingFieldError{Field: field, Row: row}
		}
	}

	for _, field := range desc.Unique {
		value, ok := row[field]
		if !ok {
			continue
		}

		seen, ok := idx[field]
		if !ok {
			seen = make(map[string]struct{})
			idx[field] = seen
		}

		if _, dup := seen[value]; dup {
			return &DuplicateValueError{Field: field, Value: value, Row: row}
		}
		seen[value] = struct{}{}
	}

	return nil
}
