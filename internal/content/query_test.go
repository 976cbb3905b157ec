package content

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/elevara-labs/resourcehub/internal/manifest"
)

func queryFixture(opts Options) *Repository {
	return New([]manifest.Entry{
		entry("articles", "leadership-habits", "---\ntitle: \"Leadership Habits\"\npublishDate: \"2026-03-01\"\nauthor: \"Rosa Imrie\"\ncategories: [\"Leadership\"]\ntags: [\"teams\"]\nexcerpt: \"Building influence day by day.\"\n---\n\nbody\n"),
		entry("articles", "focus-rituals", "---\ntitle: \"Focus Rituals\"\npublishDate: \"2026-01-15\"\ncategories: [\"Focus\"]\ntags: [\"attention\", \"habits\"]\nexcerpt: \"Small rituals for deep attention.\"\n---\n\nbody\n"),
		entry("podcasts", "leading-quietly", "---\ntitle: \"Leading Quietly\"\npublishDate: \"2026-02-10\"\ncategories: [\"Leadership\"]\ntags: [\"influence\"]\nexcerpt: \"A conversation about quiet influence.\"\n---\n\nbody\n"),
		entry("offers", "anchor-course", "---\ntitle: \"Anchor Course\"\npublishDate: \"2026-02-20\"\ncategories: [\"Resilience\"]\ntags: [\"stress\"]\nexcerpt: \"Six weeks of grounded practice.\"\n---\n\nbody\n"),
	}, opts)
}

func TestQueryNoFilters(t *testing.T) {
	repo := queryFixture(Options{})
	got := repo.Query(QueryOptions{})
	if len(got) != repo.Len() {
		t.Fatalf("empty query returned %d of %d records", len(got), repo.Len())
	}
	if got[0].Slug != "leadership-habits" {
		t.Errorf("default order should be newest first, got %q", got[0].Slug)
	}
}

func TestQueryTypeFilter(t *testing.T) {
	repo := queryFixture(Options{})

	got := repo.Query(QueryOptions{Type: "podcast"})
	if len(got) != 1 || got[0].Slug != "leading-quietly" {
		t.Errorf("type filter: got %v", slugs(got))
	}

	if got := repo.Query(QueryOptions{Type: FilterAll}); len(got) != repo.Len() {
		t.Errorf("type %q should match everything, got %d records", FilterAll, len(got))
	}
}

func TestQueryCategoryFilter(t *testing.T) {
	repo := queryFixture(Options{})

	got := repo.Query(QueryOptions{Category: "Leadership"})
	if len(got) != 2 {
		t.Fatalf("category filter: got %v", slugs(got))
	}

	if got := repo.Query(QueryOptions{Category: FilterAll}); len(got) != repo.Len() {
		t.Errorf("category %q should match everything, got %d records", FilterAll, len(got))
	}

	got = repo.Query(QueryOptions{Type: "article", Category: "Leadership"})
	if len(got) != 1 || got[0].Slug != "leadership-habits" {
		t.Errorf("filters should AND together, got %v", slugs(got))
	}
}

func TestQueryTextSearch(t *testing.T) {
	repo := queryFixture(Options{})

	t.Run("exact term", func(t *testing.T) {
		got := repo.Query(QueryOptions{Text: "rituals"})
		if len(got) != 1 || got[0].Slug != "focus-rituals" {
			t.Errorf("got %v", slugs(got))
		}
	})

	t.Run("misspelled term still matches", func(t *testing.T) {
		got := repo.Query(QueryOptions{Text: "leadrship"})
		if len(got) == 0 {
			t.Fatal("expected fuzzy match for misspelling")
		}
		for _, rec := range got {
			if rec.Slug != "leadership-habits" && rec.Slug != "leading-quietly" {
				t.Errorf("unexpected match %q", rec.Slug)
			}
		}
	})

	t.Run("author is searchable", func(t *testing.T) {
		got := repo.Query(QueryOptions{Text: "imrie"})
		if len(got) != 1 || got[0].Slug != "leadership-habits" {
			t.Errorf("got %v", slugs(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		got := repo.Query(QueryOptions{Text: "zzz-nonexistent-zzz"})
		if len(got) != 0 {
			t.Errorf("expected empty result, got %v", slugs(got))
		}
	})

	t.Run("terms AND together", func(t *testing.T) {
		got := repo.Query(QueryOptions{Text: "quiet influence"})
		if len(got) != 1 || got[0].Slug != "leading-quietly" {
			t.Errorf("got %v", slugs(got))
		}
		got = repo.Query(QueryOptions{Text: "quiet rituals"})
		if len(got) != 0 {
			t.Errorf("no record has both terms, got %v", slugs(got))
		}
	})
}

func TestQuerySortOrders(t *testing.T) {
	repo := queryFixture(Options{})

	t.Run("oldest", func(t *testing.T) {
		got := repo.Query(QueryOptions{Sort: SortOldest})
		if got[0].Slug != "focus-rituals" {
			t.Errorf("oldest first: got %q", got[0].Slug)
		}
		if got[len(got)-1].Slug != "leadership-habits" {
			t.Errorf("newest last: got %q", got[len(got)-1].Slug)
		}
	})

	t.Run("title", func(t *testing.T) {
		got := repo.Query(QueryOptions{Sort: SortTitle})
		want := []string{"anchor-course", "focus-rituals", "leadership-habits", "leading-quietly"}
		for i := range want {
			if got[i].Slug != want[i] {
				t.Errorf("title order position %d: got %q, want %q", i, got[i].Slug, want[i])
			}
		}
	})

	t.Run("type filter with title order", func(t *testing.T) {
		got := repo.Query(QueryOptions{Type: "article", Sort: SortTitle})
		want := []string{"focus-rituals", "leadership-habits"}
		if len(got) != len(want) {
			t.Fatalf("got %v", slugs(got))
		}
		for i := range want {
			if got[i].Slug != want[i] {
				t.Errorf("position %d: got %q, want %q", i, got[i].Slug, want[i])
			}
		}
	})
}

func TestQueryTitleSortUsesCollation(t *testing.T) {
	repo := New([]manifest.Entry{
		entry("articles", "ae", "---\ntitle: \"Ärger\"\npublishDate: \"2026-01-01\"\n---\n\nbody\n"),
		entry("articles", "a", "---\ntitle: \"Anker\"\npublishDate: \"2026-01-02\"\n---\n\nbody\n"),
		entry("articles", "b", "---\ntitle: \"Boden\"\npublishDate: \"2026-01-03\"\n---\n\nbody\n"),
	}, Options{Collation: language.German})

	got := repo.Query(QueryOptions{Sort: SortTitle})
	// German collation sorts Ä with A, ahead of B; a byte sort would put
	// Ärger after Boden.
	want := []string{"a", "ae", "b"}
	for i := range want {
		if got[i].Slug != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i].Slug, want[i])
		}
	}
}

func slugs(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Slug
	}
	return out
}
