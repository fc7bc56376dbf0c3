package parser

import (
	"testing"
)

func TestPrefixMapper(t *testing.T) {
	tests := []struct {
		prefix   string
		input    string
		expected string
	}{
		{"", "1", "1"},
		{"", "0042", "0042"},
		{"Z", "1", "Z1"},
		{"Z", "Z1", "Z1"},
		{"Z", "", "Z"},
		{"zone-", "17", "zone-17"},
	}

	for _, tt := range tests {
		result := PrefixMapper(tt.prefix)(tt.input)
		if result != tt.expected {
			t.Errorf("PrefixMapper(%q)(%q) = %q, expected %q",
				tt.prefix, tt.input, result, tt.expected)
		}
		if again := PrefixMapper(tt.prefix)(result); again != result {
			t.Errorf("PrefixMapper(%q) is not idempotent: %q -> %q", tt.prefix, result, again)
		}
	}
}

func TestParseZone(t *testing.T) {
	tests := []struct {
		value    string
		prefix   string
		expected int64
		wantErr  bool
	}{
		{"123", "", 123, false},
		{"0042", "", 42, false},
		{"-7", "", -7, false},
		{"Z15", "Z", 15, false},
		{"Z15", "", 0, true},
		{"1.5", "", 0, true},
		{"", "", 0, true},
	}

	for _, tt := range tests {
		result, err := ParseZone(tt.value, tt.prefix)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseZone(%q, %q) error = %v, wantErr %v", tt.value, tt.prefix, err, tt.wantErr)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseZone(%q, %q) = %d, expected %d", tt.value, tt.prefix, result, tt.expected)
		}
	}
}

func TestLooksNumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123", true},
		{"123.45", true},
		{"-100", true},
		{"1e3", true},
		{"Z1", false},
		{"hello", false},
		{"", false},
	}

	for _, tt := range tests {
		if result := LooksNumeric(tt.input); result != tt.expected {
			t.Errorf("LooksNumeric(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}
