package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	valid := NewRunID()

	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{valid.String(), valid, false},
		{"  " + valid.String() + " ", valid, false},
		{"", "", true},
		{"   ", "", true},
		{"not-a-uuid", "", true},
	}

	for _, tt := range tests {
		result, err := ParseRunID(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("ParseRunID(%q) expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRunID(%q) unexpected error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("ParseRunID(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

// TestRunIDShort tests the log-friendly suffix
func TestRunIDShort(t *testing.T) {
	if got := RunID("abc").Short(); got != "abc" {
		t.Errorf("Short() = %q, expected %q", got, "abc")
	}
	if got := RunID("0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b").Short(); got != "2e3f4a5b" {
		t.Errorf("Short() = %q, expected %q", got, "2e3f4a5b")
	}
}

// TestHash tests hashing and comparison
func TestHash(t *testing.T) {
	a := NewHash([]byte("catplot"))
	b := NewHash([]byte("catplot"))
	c := NewHash([]byte("heatmap"))

	if len(a) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(a))
	}
	if !a.Equals(b) {
		t.Error("Expected equal input to give equal hashes")
	}
	if a.Equals(c) {
		t.Error("Expected different input to give different hashes")
	}
	if a.Short() != a.String()[:12] {
		t.Errorf("Short() = %q, expected prefix of %q", a.Short(), a)
	}
	if !Hash("").IsEmpty() {
		t.Error("Expected empty hash to be empty")
	}
}
