package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/commdeck/commdeck/pkg/core"
	"github.com/commdeck/commdeck/pkg/render"
)

// Define styles using lipgloss
var (
	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 1, 0)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

var titleCaser = cases.Title(language.English)

// formatCard renders one comm as a bordered terminal card.
func formatCard(c *core.Comm) string {
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(c.Title()))
	b.WriteString("\n")
	b.WriteString(dateStyle.Render(render.DisplayDate(c.Date())))
	if c.Summary() != "" {
		b.WriteString("\n")
		b.WriteString(c.Summary())
	}

	var chips []string
	for _, name := range c.FacetNames() {
		fv, ok := c.Facet(name)
		if !ok {
			continue
		}
		chips = append(chips, fmt.Sprintf("%s: %s", titleCaser.String(name), strings.Join(fv.Values(), ", ")))
	}
	if len(chips) > 0 {
		b.WriteString("\n")
		b.WriteString(chipStyle.Render(strings.Join(chips, "  ")))
	}

	return cardStyle.Render(b.String())
}

// formatHeader renders a section heading like "Results (12 of 48)".
func formatHeader(text string) string {
	return headerStyle.Render(text)
}

// formatNoData renders the empty-result placeholder.
func formatNoData(text string) string {
	return noDataStyle.Render(text)
}
