// Package render turns comms into HTML cards for the web UI. Rendering uses
// a single embedded html/template; the UI layer composes the cards into the
// page.
package render

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/commdeck/commdeck/pkg/core"
)

//go:embed card.html
var cardTemplate string

// FacetChip is one facet group displayed on a card.
type FacetChip struct {
	Name   string
	Values []string
}

// TemplateData holds data passed to the card template.
type TemplateData struct {
	Comm   *core.Comm
	Facets []FacetChip
}

// CardRenderer renders one comm as an HTML card.
type CardRenderer struct {
	template *template.Template
}

// NewCardRenderer parses the embedded card template.
func NewCardRenderer() (*CardRenderer, error) {
	tmpl, err := template.New("card").Funcs(GetTemplateFuncs()).Parse(cardTemplate)
	if err != nil {
		return nil, err
	}
	return &CardRenderer{template: tmpl}, nil
}

// Render creates the HTML representation of a comm. Render errors produce a
// placeholder card rather than breaking the page.
func (r *CardRenderer) Render(c *core.Comm) template.HTML {
	data := TemplateData{Comm: c}
	for _, name := range c.FacetNames() {
		if fv, ok := c.Facet(name); ok {
			data.Facets = append(data.Facets, FacetChip{Name: name, Values: fv.Values()})
		}
	}

	var buf strings.Builder
	if err := r.template.Execute(&buf, data); err != nil {
		return template.HTML("<article class=\"card card-error\">Error rendering card</article>")
	}
	return template.HTML(buf.String())
}
