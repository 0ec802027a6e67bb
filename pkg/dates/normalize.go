// Package dates converts the assorted human-entered date formats found in
// communication data into a canonical YYYY-MM-DD form that sorts and
// compares correctly as a plain string.
//
// Normalization is a small ordered rule table, not general date parsing:
// each rule pairs a recognizer with an extractor, rules are tried in
// sequence, and the first rule whose extractor succeeds wins. Input that no
// rule recognizes is returned unchanged so callers can display the raw
// string and treat it as unparsable.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// monthNames is the fixed lookup table for English month names;
// index+1 is the numeric month.
var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

func monthNumber(name string) (int, bool) {
	lower := strings.ToLower(name)
	for i, m := range monthNames {
		if m == lower {
			return i + 1, true
		}
	}
	return 0, false
}

// canonicalRe recognizes input that is already normalized: an ISO date,
// optionally followed by a time portion which is preserved as-is.
var canonicalRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ].*)?$`)

// rule pairs a format recognizer with an extractor producing the canonical
// form. An extractor may fail (ok=false) to fall through to the next rule.
type rule struct {
	pattern *regexp.Regexp
	extract func(m []string) (string, bool)
}

var rules = []rule{
	{
		// "February 5, 2025"
		pattern: regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2}),\s*(\d{4})$`),
		extract: func(m []string) (string, bool) {
			month, ok := monthNumber(m[1])
			if !ok {
				return "", false
			}
			day, _ := strconv.Atoi(m[2])
			return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
		},
	},
	{
		// "5 February 2025"
		pattern: regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})$`),
		extract: func(m []string) (string, bool) {
			month, ok := monthNumber(m[2])
			if !ok {
				return "", false
			}
			day, _ := strconv.Atoi(m[1])
			return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
		},
	},
	{
		// "02/05/2025" (US order), delegated to a generic parser. If the
		// parser rejects it (e.g. month 13) we fall through.
		pattern: regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		extract: func(m []string) (string, bool) {
			t, err := dateparse.ParseAny(m[0])
			if err != nil {
				return "", false
			}
			return t.Format("2006-01-02"), true
		},
	},
	{
		// "2025/02/05"
		pattern: regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`),
		extract: func(m []string) (string, bool) {
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			return fmt.Sprintf("%s-%02d-%02d", m[1], month, day), true
		},
	},
}

// Normalize converts a human-entered date string to canonical YYYY-MM-DD
// form. Already-canonical input (including a trailing time portion) and
// input matching no rule are returned unchanged, which makes Normalize
// idempotent for every input.
func Normalize(dateString string) string {
	trimmed := strings.TrimSpace(dateString)
	if canonicalRe.MatchString(trimmed) {
		return dateString
	}
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		if out, ok := r.extract(m); ok {
			return out
		}
	}
	return dateString
}

// ParseCanonical normalizes a date string and parses the result into a
// time.Time. The second return value is false when the string does not
// normalize to a real calendar date; callers treat such comms as having an
// invalid date (excluded from timeframe windows, sorted after valid dates).
func ParseCanonical(dateString string) (time.Time, bool) {
	n := strings.TrimSpace(Normalize(dateString))
	if len(n) < len("2006-01-02") {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", n[:len("2006-01-02")])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
