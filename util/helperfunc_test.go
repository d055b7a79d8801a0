package util

import "testing"

func TestContains(t *testing.T) {
	list := []string{"a", "b", "c"}
	if !Contains("b", list) {
		t.Fatalf("expected Contains to return true for existing item")
	}
	if Contains("x", list) {
		t.Fatalf("expected Contains to return false for missing item")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trim leading whitespace", input: "  Jane Doe", expected: "Jane Doe"},
		{name: "trim trailing whitespace", input: "Jane Doe  ", expected: "Jane Doe"},
		{name: "collapse internal spaces", input: "Jane    Doe", expected: "Jane Doe"},
		{name: "trim and collapse combined", input: "  Jane    Doe  ", expected: "Jane Doe"},
		{name: "already normalized", input: "Jane Doe", expected: "Jane Doe"},
		{name: "empty string", input: "", expected: ""},
		{name: "only whitespace", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.expected {
				t.Fatalf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jane.Doe", "jane.doe"},
		{"  jane.doe  ", "jane.doe"},
		{"JANE", "jane"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeUsername(tt.input); got != tt.expected {
			t.Fatalf("NormalizeUsername(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
