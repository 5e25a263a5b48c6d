package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Source reads delimited input and produces one field-name→value mapping per
// data row. The first record is the header and drives the mapping; rows are
// never buffered beyond the one being processed.
type Source struct {
	reader  *csv.Reader
	counter *CountingReader
	headers []string
	line    int
}

// NewSource wraps r (BOM skipping, UTF-8 sanitization, byte counting) and
// reads the header row. An empty stream is an error.
func NewSource(r io.Reader) (*Source, error) {
	counter := Wrap(r)
	cr := csv.NewReader(counter)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty, expected a header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = CleanHeader(h)
	}

	return &Source{
		reader:  cr,
		counter: counter,
		headers: headers,
		line:    1,
	}, nil
}

// Headers returns the cleaned header names in input order.
func (s *Source) Headers() []string {
	return s.headers
}

// Line returns the 1-indexed input line of the most recently returned row.
func (s *Source) Line() int {
	return s.line
}

// BytesRead returns the number of raw input bytes consumed so far.
func (s *Source) BytesRead() int64 {
	return s.counter.BytesRead
}

// Next returns the next data row as a header-keyed mapping, or io.EOF when
// the input is exhausted. Fully empty rows are skipped. Short rows simply
// leave the trailing columns absent from the mapping.
func (s *Source) Next() (map[string]string, error) {
	for {
		record, err := s.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("reading row at line %d: %w", s.line+1, err)
		}
		s.line++

		empty := true
		for _, v := range record {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		row := make(map[string]string, len(s.headers))
		for i, h := range s.headers {
			if h == "" || i >= len(record) {
				continue
			}
			row[h] = CleanCell(record[i])
		}
		return row, nil
	}
}

// CleanHeader normalizes a header cell: trims whitespace, strips Excel
// formula wrappers (="value"), and lowercases the name.
func CleanHeader(h string) string {
	return strings.ToLower(CleanCell(h))
}

// CleanCell trims whitespace and strips the ="value" wrapper that Excel
// adds to preserve leading zeros.
func CleanCell(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, `="`) && strings.HasSuffix(v, `"`) && len(v) >= 3 {
		v = v[2 : len(v)-1]
	}
	return strings.TrimSpace(v)
}
