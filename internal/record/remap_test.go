package record

import (
	"reflect"
	"testing"
)

func TestParseMapping(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []MapPair
		wantErr bool
	}{
		{
			name:  "empty string is nil mapping",
			input: "",
			want:  nil,
		},
		{
			name:  "names lowercased to match normalized headers",
			input: "FullName:name,Tel:phone",
			want: []MapPair{
				{Source: "fullname", Target: "name"},
				{Source: "tel", Target: "phone"},
			},
		},
		{
			name:  "pair without target keeps source name",
			input: "name,Tel:phone",
			want: []MapPair{
				{Source: "name", Target: "name"},
				{Source: "tel", Target: "phone"},
			},
		},
		{
			name:  "separators without pairs are a nil mapping",
			input: " , ,",
			want:  nil,
		},
		{
			name:  "whitespace tolerated",
			input: " a : b , c ",
			want: []MapPair{
				{Source: "a", Target: "b"},
				{Source: "c", Target: "c"},
			},
		},
		{
			name:    "empty source is an error",
			input:   ":name",
			wantErr: true,
		},
		{
			name:    "empty target is an error",
			input:   "name:",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMapping(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMapping(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMapping(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRemap_EmptyMappingPassesThrough(t *testing.T) {
	row := Row{"a": "1", "b": "2"}

	for _, pairs := range [][]MapPair{nil, {}} {
		got := Remap(row, pairs)
		if !reflect.DeepEqual(got, row) {
			t.Errorf("Remap(row, %v) = %v, want %v", pairs, got, row)
		}
	}
}

func TestRemap_FiltersAndRenames(t *testing.T) {
	row := Row{"fullname": "Alice", "tel": "123", "extra": "dropped"}
	pairs := []MapPair{
		{Source: "fullname", Target: "name"},
		{Source: "tel", Target: "phone"},
	}

	got := Remap(row, pairs)
	want := Row{"name": "Alice", "phone": "123"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Remap() = %v, want %v", got, want)
	}
}

func TestRemap_AbsentSourceLeavesTargetAbsent(t *testing.T) {
	row := Row{"a": "1"}
	pairs := []MapPair{
		{Source: "a", Target: "x"},
		{Source: "missing", Target: "y"},
	}

	got := Remap(row, pairs)
	if _, ok := got["y"]; ok {
		t.Errorf("target of absent source should be absent, got %v", got)
	}
	if got["x"] != "1" {
		t.Errorf("x = %q, want %q", got["x"], "1")
	}
}
