package content

import (
	"testing"

	"github.com/elevara-labs/resourcehub/internal/manifest"
)

func relatedFixture() *Repository {
	return New([]manifest.Entry{
		entry("articles", "ref", articleDoc("Reference", "2026-03-01",
			[]string{"Focus", "Resilience"}, []string{"habits", "stress"}, 10)),
		entry("articles", "two-cats", articleDoc("Two Categories", "2026-01-01",
			[]string{"Focus", "Resilience"}, nil, 10)),
		entry("articles", "one-cat-one-tag", articleDoc("One Each", "2026-02-01",
			[]string{"Focus"}, []string{"habits"}, 10)),
		entry("podcasts", "tags-only", articleDoc("Tags Only", "2026-02-15",
			nil, []string{"habits", "stress"}, 10)),
		entry("articles", "unrelated", articleDoc("Unrelated", "2026-02-20",
			[]string{"Career"}, []string{"salary"}, 10)),
		entry("offers", "one-tag", articleDoc("One Tag", "2026-01-10",
			nil, []string{"stress"}, 10)),
	}, Options{})
}

func TestRelatedScoring(t *testing.T) {
	repo := relatedFixture()
	ref, ok := repo.BySlug(TypeArticle, "ref")
	if !ok {
		t.Fatal("missing reference record")
	}

	got := repo.Related(ref, 10)

	// two-cats: 2 shared categories = 6
	// one-cat-one-tag: 1 category + 1 tag = 4
	// tags-only: 2 shared tags = 2
	// one-tag: 1 shared tag = 1
	// unrelated: 0, excluded; ref itself excluded
	wantOrder := []string{"two-cats", "one-cat-one-tag", "tags-only", "one-tag"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d related records, want %d", len(got), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got[i].Slug != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Slug, want)
		}
	}
}

func TestRelatedExcludesSelfAndZeroScores(t *testing.T) {
	repo := relatedFixture()
	ref, _ := repo.BySlug(TypeArticle, "ref")

	for _, rec := range repo.Related(ref, 10) {
		if rec.Type == ref.Type && rec.Slug == ref.Slug {
			t.Error("reference record must not appear in its own results")
		}
		if rec.Slug == "unrelated" {
			t.Error("zero-score record must be excluded")
		}
	}
}

func TestRelatedLimit(t *testing.T) {
	repo := relatedFixture()
	ref, _ := repo.BySlug(TypeArticle, "ref")

	if got := repo.Related(ref, 2); len(got) != 2 {
		t.Errorf("limit 2: got %d records", len(got))
	}
	if got := repo.Related(ref, 0); len(got) != DefaultRelatedLimit {
		t.Errorf("non-positive limit should fall back to %d, got %d",
			DefaultRelatedLimit, len(got))
	}
}

func TestRelatedTiesKeepNewestFirst(t *testing.T) {
	repo := New([]manifest.Entry{
		entry("articles", "ref", articleDoc("Ref", "2026-03-01",
			nil, []string{"habits"}, 10)),
		entry("articles", "older", articleDoc("Older", "2026-01-01",
			nil, []string{"habits"}, 10)),
		entry("articles", "newer", articleDoc("Newer", "2026-02-01",
			nil, []string{"habits"}, 10)),
	}, Options{})
	ref, _ := repo.BySlug(TypeArticle, "ref")

	got := repo.Related(ref, 10)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Slug != "newer" || got[1].Slug != "older" {
		t.Errorf("equal scores should keep newest-first order, got %q then %q",
			got[0].Slug, got[1].Slug)
	}
}

func TestRelatedRepeatedLabelsCountOnce(t *testing.T) {
	repo := New([]manifest.Entry{
		entry("articles", "ref", articleDoc("Ref", "2026-03-01",
			nil, []string{"habits"}, 10)),
		entry("articles", "repeats", "---\ntitle: \"Repeats\"\npublishDate: \"2026-01-01\"\ntags: [\"habits\", \"habits\", \"habits\"]\n---\n\nbody\n"),
		entry("articles", "single", articleDoc("Single", "2026-02-01",
			nil, []string{"habits"}, 10)),
	}, Options{})
	ref, _ := repo.BySlug(TypeArticle, "ref")

	got := repo.Related(ref, 10)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Both score 1, so newest-first order decides.
	if got[0].Slug != "single" {
		t.Errorf("repeated tags must not inflate the score: got %q first", got[0].Slug)
	}
}

func TestRelatedBySlug(t *testing.T) {
	repo := relatedFixture()

	if _, ok := repo.RelatedBySlug(TypeArticle, "missing", 3); ok {
		t.Error("unknown reference should report false")
	}
	got, ok := repo.RelatedBySlug(TypeArticle, "ref", 3)
	if !ok {
		t.Fatal("expected to resolve reference")
	}
	if len(got) != 3 {
		t.Errorf("got %d records, want 3", len(got))
	}
}
