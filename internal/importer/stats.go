package importer

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Stats collects run counters: rows seen, requests issued, and a histogram
// of response status codes. Dispatch callbacks touch it concurrently, so all
// access goes through the mutex. The counters are owned by a single run and
// read once at exit.
type Stats struct {
	mu       sync.Mutex
	rows     int
	requests int
	codes    map[int]int
}

// NewStats creates an empty counter set.
func NewStats() *Stats {
	return &Stats{codes: make(map[int]int)}
}

// RowSeen increments the processed-row counter.
func (s *Stats) RowSeen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows++
}

// RequestIssued increments the requests-issued counter.
func (s *Stats) RequestIssued() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
}

// RecordStatus counts one response status code.
func (s *Stats) RecordStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code]++
}

// Rows returns the processed-row count.
func (s *Stats) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// Requests returns the requests-issued count.
func (s *Stats) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// StatusCount returns the recorded occurrences of one status code.
func (s *Stats) StatusCount(code int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[code]
}

// Report writes the end-of-run summary: totals, the status-code histogram,
// and a warning when any non-2xx code was recorded.
func (s *Stats) Report(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintf(w, "rows processed:  %d\n", s.rows)
	fmt.Fprintf(w, "requests issued: %d\n", s.requests)

	if len(s.codes) > 0 {
		codes := make([]int, 0, len(s.codes))
		for code := range s.codes {
			codes = append(codes, code)
		}
		sort.Ints(codes)

		fmt.Fprintln(w, "status codes:")
		failures := 0
		for _, code := range codes {
			fmt.Fprintf(w, "  %d: %d\n", code, s.codes[code])
			if code < 200 || code > 299 {
				failures += s.codes[code]
			}
		}
		if failures > 0 {
			fmt.Fprintf(w, "WARNING: %d request(s) returned a non-2xx status\n", failures)
		}
	}
}
