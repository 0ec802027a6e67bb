// Package index provides the inverted word index behind keyword search and
// search-as-you-type suggestions. An index is built once over a fixed set of
// comms and is immutable afterwards, so it is safe to share between
// concurrent readers.
package index

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/commdeck/commdeck/pkg/core"
)

// DefaultSuggestionLimit caps Suggest results when the caller passes a
// non-positive limit.
const DefaultSuggestionLimit = 5

// Index maps case-folded, whitespace-delimited tokens to the comms whose
// indexed fields contain them. Titles are always indexed; summaries are
// indexed only when summary indexing is enabled at construction time.
//
// Per-token comm lists keep insertion order and are deduplicated by pointer
// identity, which makes every query result deterministic.
type Index struct {
	titles         map[string][]*core.Comm
	summaries      map[string][]*core.Comm
	titleTokens    []string
	summaryTokens  []string
	indexSummaries bool
}

// New builds an index over the given comms. When indexSummaries is true the
// summary field is tokenized into a secondary index searched alongside the
// title index.
func New(comms []*core.Comm, indexSummaries bool) *Index {
	idx := &Index{
		titles:         make(map[string][]*core.Comm),
		summaries:      make(map[string][]*core.Comm),
		indexSummaries: indexSummaries,
	}
	for _, c := range comms {
		idx.titleTokens = idx.add(idx.titles, idx.titleTokens, c.Title(), c)
		if indexSummaries {
			idx.summaryTokens = idx.add(idx.summaries, idx.summaryTokens, c.Summary(), c)
		}
	}
	return idx
}

func (idx *Index) add(m map[string][]*core.Comm, order []string, text string, c *core.Comm) []string {
	for _, tok := range strings.Fields(fold(text)) {
		list, seen := m[tok]
		if !seen {
			order = append(order, tok)
		}
		if !containsComm(list, c) {
			m[tok] = append(list, c)
		}
	}
	return order
}

// Search returns every comm with at least one indexed token containing the
// case-folded, trimmed query as a substring. Empty and whitespace-only
// queries return nothing. Each comm appears at most once, in first-discovery
// order over the title index and then, when enabled, the summary index.
func (idx *Index) Search(query string) []*core.Comm {
	q := strings.TrimSpace(fold(query))
	if q == "" {
		return nil
	}

	var out []*core.Comm
	seen := make(map[*core.Comm]struct{})
	collect := func(m map[string][]*core.Comm, order []string) {
		for _, tok := range order {
			if !strings.Contains(tok, q) {
				continue
			}
			for _, c := range m[tok] {
				if _, dup := seen[c]; dup {
					continue
				}
				seen[c] = struct{}{}
				out = append(out, c)
			}
		}
	}
	collect(idx.titles, idx.titleTokens)
	if idx.indexSummaries {
		collect(idx.summaries, idx.summaryTokens)
	}
	return out
}

// Suggest returns up to limit distinct indexed tokens starting with the
// case-folded, trimmed prefix, sorted ascending. Colons are stripped from
// suggested tokens; they are punctuation left over from title text
// ("Recall: ...") and never useful to type. A non-positive limit means
// DefaultSuggestionLimit. Empty and whitespace-only prefixes return nothing.
func (idx *Index) Suggest(prefix string, limit int) []string {
	p := strings.TrimSpace(fold(prefix))
	if p == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	set := make(map[string]struct{})
	add := func(order []string) {
		for _, tok := range order {
			if strings.HasPrefix(tok, p) {
				set[strings.ReplaceAll(tok, ":", "")] = struct{}{}
			}
		}
	}
	add(idx.titleTokens)
	if idx.indexSummaries {
		add(idx.summaryTokens)
	}

	out := make([]string, 0, len(set))
	for tok := range set {
		out = append(out, tok)
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// IndexesSummaries reports whether the secondary summary index is enabled.
func (idx *Index) IndexesSummaries() bool { return idx.indexSummaries }

// fold lower-cases text for caseless matching. A fresh caser per call since
// cases.Caser values are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

func containsComm(list []*core.Comm, c *core.Comm) bool {
	for _, existing := range list {
		if existing == c {
			return true
		}
	}
	return false
}
