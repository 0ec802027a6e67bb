package dates

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"month day year", "February 5, 2025", "2025-02-05"},
		{"month day year lowercase", "february 5, 2025", "2025-02-05"},
		{"month day year double digit", "December 31, 1999", "1999-12-31"},
		{"day month year", "5 February 2025", "2025-02-05"},
		{"day month year lowercase", "31 december 1999", "1999-12-31"},
		{"us slash", "02/05/2025", "2025-02-05"},
		{"us slash unambiguous day", "12/31/1999", "1999-12-31"},
		{"iso slash", "2025/02/05", "2025-02-05"},
		{"iso slash single digits", "2025/2/5", "2025-02-05"},
		{"already canonical", "2025-02-05", "2025-02-05"},
		{"canonical with time", "2025-02-05T10:30:00Z", "2025-02-05T10:30:00Z"},
		{"canonical with space time", "2025-02-05 10:30", "2025-02-05 10:30"},
		{"unknown month name", "Smarch 5, 2025", "Smarch 5, 2025"},
		{"unrecognized", "sometime next week", "sometime next week"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"February 5, 2025",
		"5 February 2025",
		"02/05/2025",
		"2025/02/05",
		"2025-02-05",
		"2025-02-05T10:30:00Z",
		"sometime next week",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(%q): first pass %q, second pass %q", input, once, twice)
		}
	}
}

func TestParseCanonical(t *testing.T) {
	d, ok := ParseCanonical("February 5, 2025")
	if !ok {
		t.Fatal("expected February 5, 2025 to parse")
	}
	want := time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("got %v, want %v", d, want)
	}

	if _, ok := ParseCanonical("2025-02-05T10:30:00Z"); !ok {
		t.Error("expected canonical date with time portion to parse")
	}

	if _, ok := ParseCanonical("sometime next week"); ok {
		t.Error("expected unrecognized input not to parse")
	}

	// Matches the canonical shape but is not a real calendar date.
	if _, ok := ParseCanonical("2025-13-05"); ok {
		t.Error("expected month 13 not to parse")
	}

	if _, ok := ParseCanonical(""); ok {
		t.Error("expected empty string not to parse")
	}
}
