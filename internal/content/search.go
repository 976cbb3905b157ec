package content

import "strings"

// searchTerms normalizes a raw query into lowercase deduplicated terms.
// Single characters are dropped; everything else is kept, since searches
// against a small catalog are keyword-like, not natural language.
func searchTerms(query string) []string {
	words := strings.Fields(query)
	var terms []string
	seen := make(map[string]bool)
	for _, w := range words {
		lower := strings.ToLower(w)
		lower = strings.Trim(lower, ".,;:!?\"'()[]{}")
		if len(lower) < 2 || seen[lower] {
			continue
		}
		seen[lower] = true
		terms = append(terms, lower)
	}
	return terms
}

// matchesTerms reports whether every term hits at least one token of the
// record. Terms AND together; a record must satisfy the whole query.
func matchesTerms(rec Record, terms []string) bool {
	tokens := searchTokens(rec)
	for _, term := range terms {
		matched := false
		for _, tok := range tokens {
			if fuzzyMatch(term, tok) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// searchTokens collects the lowercase words of the record's searchable
// fields: title, excerpt, author, categories, and tags. The body is
// deliberately not indexed.
func searchTokens(rec Record) []string {
	fields := []string{rec.Title, rec.Excerpt, rec.Author}
	fields = append(fields, rec.Categories...)
	fields = append(fields, rec.Tags...)

	var tokens []string
	for _, f := range fields {
		tokens = append(tokens, splitWords(strings.ToLower(f))...)
	}
	return tokens
}

func splitWords(s string) []string {
	f := func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '(' || r == ')' ||
			r == ',' || r == '.' || r == '/' || r == ':' || r == '—' || r == '&'
	}
	return strings.FieldsFunc(s, f)
}

// fuzzyMatch accepts a token that contains the term, or one within edit
// distance of roughly 30% of the term's length. Terms shorter than four
// characters must match exactly; a wide net on tiny terms matches
// everything.
func fuzzyMatch(term, token string) bool {
	if strings.Contains(token, term) {
		return true
	}
	if len(term) < 4 {
		return false
	}
	maxEdits := len(term) * 3 / 10
	if maxEdits < 1 {
		maxEdits = 1
	}
	return withinEditDistance(term, token, maxEdits)
}

// withinEditDistance reports whether the Levenshtein distance between a
// and b is at most max. Rows whose minimum already exceeds max abort the
// computation early.
func withinEditDistance(a, b string, max int) bool {
	la, lb := len(a), len(b)
	if la-lb > max || lb-la > max {
		return false
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := prev[j] + 1
			if curr[j-1]+1 < d {
				d = curr[j-1] + 1
			}
			if prev[j-1]+cost < d {
				d = prev[j-1] + cost
			}
			curr[j] = d
			if d < rowMin {
				rowMin = d
			}
		}
		if rowMin > max {
			return false
		}
		prev, curr = curr, prev
	}
	return prev[lb] <= max
}
