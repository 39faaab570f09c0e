package tags

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "Mixed comma variants",
			input: "风景，人像, 旅行",
			want:  []string{"风景", "人像", "旅行"},
		},
		{
			name:  "ASCII commas",
			input: "cat,dog , bird",
			want:  []string{"cat", "dog", "bird"},
		},
		{
			name:  "Blank segments discarded",
			input: " , ,a,,， ,b, ",
			want:  []string{"a", "b"},
		},
		{
			name:  "Empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "Whitespace only",
			input: "   \t ",
			want:  []string{},
		},
		{
			name:  "Inner spaces kept",
			input: "new york, san francisco",
			want:  []string{"new york", "san francisco"},
		},
		{
			name:  "Duplicates preserved",
			input: "a, a",
			want:  []string{"a", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "No duplicates", in: []string{"b", "a"}, want: []string{"b", "a"}},
		{name: "First occurrence wins", in: []string{"b", "a", "b", "c", "a"}, want: []string{"b", "a", "c"}},
		{name: "Case sensitive", in: []string{"Cat", "cat"}, want: []string{"Cat", "cat"}},
		{name: "Blank dropped", in: []string{"", "x", " \t"}, want: []string{"x"}},
		{name: "Trimmed before compare", in: []string{" x", "x "}, want: []string{"x"}},
		{name: "Nil input", in: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dedupe(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
