package cmd

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"

	"github.com/commdeck/commdeck/pkg/api"
	"github.com/commdeck/commdeck/pkg/engine"
	"github.com/commdeck/commdeck/pkg/render"
)

//go:embed web/templates/index.html
var indexTemplate string

//go:embed web/static
var staticFS embed.FS

// webUI renders the server-side HTML interface: a card grid driven entirely
// by query parameters, so every control is a plain link or form submit.
type webUI struct {
	api   *api.Server
	page  *template.Template
	cards *render.CardRenderer
}

func newWebUI(apiServer *api.Server) (*webUI, error) {
	page, err := template.New("index").Funcs(render.GetTemplateFuncs()).Parse(indexTemplate)
	if err != nil {
		return nil, err
	}
	cards, err := render.NewCardRenderer()
	if err != nil {
		return nil, err
	}
	return &webUI{api: apiServer, page: page, cards: cards}, nil
}

func (ui *webUI) RegisterRoutes(mux *http.ServeMux) {
	if staticContent, err := fs.Sub(staticFS, "web/static"); err == nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	}
	mux.HandleFunc("GET /{$}", ui.handleIndex)
}

type facetOption struct {
	Value   string
	Param   string
	Checked bool
}

type facetGroup struct {
	Name    string
	Label   string
	Options []facetOption
}

type timeframeOption struct {
	Label    string
	Selected bool
}

type filterChip struct {
	Facet     string
	Value     string
	RemoveURL string
}

type indexData struct {
	Query      string
	Timeframes []timeframeOption
	SortNewest bool
	SortOldest bool
	Facets     []facetGroup
	Chips      []filterChip
	Cards      []template.HTML
	ShownCount int
	TotalCount int
	HasMore    bool
	LoadMore   string
	ShowAll    string
	ClearAll   string
}

func (ui *webUI) handleIndex(w http.ResponseWriter, r *http.Request) {
	params := api.ParseListParams(r.URL.Query())
	catalog := ui.api.Catalog()

	sess := catalog.NewSession()
	for _, f := range params.Filters {
		sess.UpdateFilter(f.Facet, f.Value, true)
	}
	if params.Query != "" {
		sess.UpdateSearch(params.Query)
	}
	if params.Timeframe != "" {
		sess.SetTimeframe(engine.Timeframe(params.Timeframe))
	}
	if params.Sort != "" {
		sess.SetSortOrder(engine.SortOrder(params.Sort))
	}
	for page := 1; page < params.Page; page++ {
		sess.NextPage()
	}
	if params.All {
		sess.ShowAll()
	}

	visible := sess.Visible(ui.api.PageSize())
	result := sess.FilteredData()

	data := indexData{
		Query:      params.Query,
		SortNewest: sess.SortOrder() == engine.SortNewest,
		SortOldest: sess.SortOrder() == engine.SortOldest,
		ShownCount: len(visible),
		TotalCount: len(result),
		HasMore:    sess.HasMore(ui.api.PageSize()),
		LoadMore:   withParam(r.URL.Query(), "page", strconv.Itoa(sess.Page()+1)),
		ShowAll:    withParam(r.URL.Query(), "all", "1"),
		ClearAll:   "/",
	}

	for _, tf := range engine.Timeframes() {
		data.Timeframes = append(data.Timeframes, timeframeOption{
			Label:    string(tf),
			Selected: tf == sess.Timeframe(),
		})
	}

	for _, name := range catalog.FacetNames() {
		group := facetGroup{Name: name, Label: titleCaser.String(name)}
		selected := sess.Selected(name)
		for _, value := range catalog.UniqueValues(name) {
			group.Options = append(group.Options, facetOption{
				Value:   value,
				Param:   name + ":" + value,
				Checked: contains(selected, value),
			})
		}
		data.Facets = append(data.Facets, group)
	}

	for _, f := range sess.ActiveFilters() {
		data.Chips = append(data.Chips, filterChip{
			Facet:     titleCaser.String(f.Facet),
			Value:     f.Value,
			RemoveURL: withoutFilter(r.URL.Query(), f),
		})
	}

	for _, comm := range visible {
		data.Cards = append(data.Cards, ui.cards.Render(comm))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ui.page.Execute(w, data); err != nil {
		webLogger.Errorf("rendering index page: %v", err)
	}
}

// withParam returns the index URL with one query parameter replaced.
func withParam(values url.Values, key, value string) string {
	q := cloneValues(values)
	q.Set(key, value)
	return "/?" + q.Encode()
}

// withoutFilter returns the index URL with one active filter removed and
// paging reset, for filter chip removal links.
func withoutFilter(values url.Values, f engine.ActiveFilter) string {
	q := cloneValues(values)
	q.Del("page")
	q.Del("all")
	if f.Facet == engine.TimeframeFacet {
		q.Del("timeframe")
	} else {
		var kept []string
		for _, raw := range q["filter"] {
			if raw != f.Facet+":"+f.Value {
				kept = append(kept, raw)
			}
		}
		q.Del("filter")
		for _, raw := range kept {
			q.Add("filter", raw)
		}
	}
	encoded := q.Encode()
	if encoded == "" {
		return "/"
	}
	return "/?" + encoded
}

func cloneValues(values url.Values) url.Values {
	q := make(url.Values, len(values))
	for key, vals := range values {
		q[key] = append([]string(nil), vals...)
	}
	return q
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
