package render

import (
	"html/template"
	"time"

	"github.com/commdeck/commdeck/pkg/dates"
)

// GetTemplateFuncs returns the helper functions available to card and page
// templates.
func GetTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"displayDate": DisplayDate,
	}
}

// DisplayDate formats a raw date string for display: "February 5, 2025" for
// parseable dates, the raw string unchanged otherwise.
func DisplayDate(raw string) string {
	t, ok := dates.ParseCanonical(raw)
	if !ok {
		return raw
	}
	return t.Format("January 2, 2006")
}

// FormatTime formats an absolute time for page footers and stats.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
