package content

import "sort"

// DefaultRelatedLimit is how many related records Related returns when the
// caller passes a non-positive limit.
const DefaultRelatedLimit = 3

// Related ranks every other record by topical closeness to ref: each shared
// category counts three points, each shared tag one. Records scoring zero
// and ref itself are excluded. Ties keep snapshot order, so equally scored
// records come back newest first.
func (r *Repository) Related(ref Record, limit int) []Record {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	refCats := labelSet(ref.Categories)
	refTags := labelSet(ref.Tags)

	type scored struct {
		rec   Record
		score int
	}
	hits := []scored{}
	for _, rec := range r.records {
		if rec.Type == ref.Type && rec.Slug == ref.Slug {
			continue
		}
		score := 3*overlap(refCats, rec.Categories) + overlap(refTags, rec.Tags)
		if score == 0 {
			continue
		}
		hits = append(hits, scored{rec, score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]Record, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out
}

// RelatedBySlug resolves a (type, slug) key and ranks related records for
// it. Reports false when the reference record does not exist.
func (r *Repository) RelatedBySlug(typ Type, slug string, limit int) ([]Record, bool) {
	ref, ok := r.BySlug(typ, slug)
	if !ok {
		return nil, false
	}
	return r.Related(ref, limit), true
}

func labelSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return set
}

// overlap counts distinct labels present in set. Repeated labels in a
// document count once.
func overlap(set map[string]bool, labels []string) int {
	n := 0
	counted := make(map[string]bool, len(labels))
	for _, l := range labels {
		if set[l] && !counted[l] {
			counted[l] = true
			n++
		}
	}
	return n
}
