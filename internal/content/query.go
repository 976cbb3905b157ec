package content

import (
	"sort"

	"golang.org/x/text/collate"
)

// SortOrder selects how Query orders its results.
type SortOrder string

const (
	SortNewest SortOrder = "newest" // publish date descending, the default
	SortOldest SortOrder = "oldest" // publish date ascending
	SortTitle  SortOrder = "title"  // locale-aware title ascending
)

// FilterAll is the sentinel filter value that matches every record, same
// as leaving the filter empty.
const FilterAll = "all"

// QueryOptions narrows and orders the result set. Zero values mean "no
// constraint"; a zero Sort means newest first.
type QueryOptions struct {
	Text     string
	Type     string
	Category string
	Sort     SortOrder
}

// Query filters the snapshot by type, category, and fuzzy text search,
// then sorts. Filters AND together. Ties under every order keep the
// snapshot's newest-first sequence.
func (r *Repository) Query(opts QueryOptions) []Record {
	terms := searchTerms(opts.Text)

	out := []Record{}
	for _, rec := range r.records {
		if opts.Type != "" && opts.Type != FilterAll && string(rec.Type) != opts.Type {
			continue
		}
		if opts.Category != "" && opts.Category != FilterAll && !hasCategory(rec, opts.Category) {
			continue
		}
		if len(terms) > 0 && !matchesTerms(rec, terms) {
			continue
		}
		out = append(out, rec)
	}

	switch opts.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishDate.Before(out[j].PublishDate)
		})
	case SortTitle:
		// Collators are stateful, so build one per query.
		c := collate.New(r.collation)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}

func hasCategory(rec Record, category string) bool {
	for _, c := range rec.Categories {
		if c == category {
			return true
		}
	}
	return false
}
