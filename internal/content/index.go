package content

import "sort"

// Categories returns every distinct category across the snapshot, sorted.
func (r *Repository) Categories() []string {
	return r.distinctLabels(func(rec Record) []string { return rec.Categories })
}

// Tags returns every distinct tag across the snapshot, sorted.
func (r *Repository) Tags() []string {
	return r.distinctLabels(func(rec Record) []string { return rec.Tags })
}

func (r *Repository) distinctLabels(pick func(Record) []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, rec := range r.records {
		for _, label := range pick(rec) {
			if label == "" || seen[label] {
				continue
			}
			seen[label] = true
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}
