package content

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/elevara-labs/resourcehub/internal/logger"
	"github.com/elevara-labs/resourcehub/internal/manifest"
)

// Options configures a Repository.
type Options struct {
	Logger    logger.Logger // nil = discard
	Collation language.Tag  // title sort locale, zero value = und
}

type recordKey struct {
	typ  Type
	slug string
}

// Repository holds the parsed content snapshot. The snapshot is immutable
// after construction; accessors return fresh slices so callers can never
// observe or cause mutation. To pick up changed documents, build a new
// Repository and swap it in.
type Repository struct {
	log       logger.Logger
	collation language.Tag
	records   []Record // publish-date descending, ties in manifest order
	index     map[recordKey]int
}

// New parses every manifest entry into the snapshot. Documents that fail to
// parse are logged with their slug and skipped; one bad document never
// fails construction.
func New(entries []manifest.Entry, opts Options) *Repository {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := &Repository{
		log:       log,
		collation: opts.Collation,
		index:     make(map[recordKey]int, len(entries)),
	}

	seen := make(map[recordKey]bool, len(entries))
	for _, e := range entries {
		typ := TypeForGroup(e.Group)
		if typ == "" {
			log.Warn("skipping document in unknown group",
				logger.String("group", e.Group), logger.String("slug", e.Slug))
			continue
		}

		doc, err := ParseDocument(e.Slug, e.Raw)
		if err != nil {
			log.Warn("skipping unparseable document",
				logger.String("slug", e.Slug), logger.Error(err))
			continue
		}

		k := recordKey{typ, e.Slug}
		if seen[k] {
			log.Warn("skipping duplicate document",
				logger.String("type", string(typ)), logger.String("slug", e.Slug))
			continue
		}
		seen[k] = true

		r.records = append(r.records, r.buildRecord(typ, e.Slug, doc))
	}

	// Newest first; records with equal or missing dates keep manifest order.
	sort.SliceStable(r.records, func(i, j int) bool {
		return r.records[i].PublishDate.After(r.records[j].PublishDate)
	})
	for i, rec := range r.records {
		r.index[recordKey{rec.Type, rec.Slug}] = i
	}

	log.Info("content snapshot built",
		logger.Int("records", len(r.records)),
		logger.Int("documents", len(entries)))
	return r
}

// buildRecord merges front-matter onto the derived fields. ID, Slug, Type,
// and ReadTime are always derived here; a document cannot override them.
func (r *Repository) buildRecord(typ Type, slug string, doc Document) Record {
	rec := Record{
		ID:            slug,
		Slug:          slug,
		Type:          typ,
		Title:         doc.Meta.Title,
		Content:       doc.Body,
		Author:        doc.Meta.Author,
		Excerpt:       doc.Meta.Excerpt,
		Categories:    doc.Meta.Categories,
		Tags:          doc.Meta.Tags,
		FeaturedImage: doc.Meta.FeaturedImage,
		CoverImage:    doc.Meta.CoverImage,
		Duration:      doc.Meta.Duration,
		AudioURL:      doc.Meta.AudioURL,
		EmbedCode:     doc.Meta.EmbedCode,
		Price:         doc.Meta.Price,
		CTALabel:      doc.Meta.CTALabel,
		CTAURL:        doc.Meta.CTAURL,
	}

	if doc.Meta.PublishDate != "" {
		t, ok := parseDate(doc.Meta.PublishDate)
		if !ok {
			r.log.Warn("ignoring malformed publish date",
				logger.String("slug", slug),
				logger.String("publish_date", doc.Meta.PublishDate))
		}
		rec.PublishDate = t
	}

	if typ == TypeArticle {
		rec.ReadTime = readTime(doc.Body)
	}
	return rec
}

// parseDate accepts ISO dates with or without a time component. A value
// that parses with neither layout is treated as missing.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// All returns every record, publish date descending (missing dates last),
// as a fresh slice.
func (r *Repository) All() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records in the snapshot.
func (r *Repository) Len() int { return len(r.records) }

// CountByType returns per-type record counts.
func (r *Repository) CountByType() map[Type]int {
	counts := make(map[Type]int, 3)
	for _, rec := range r.records {
		counts[rec.Type]++
	}
	return counts
}

// BySlug looks up a record by its (type, slug) key. A missing record is an
// expected outcome of user-supplied routes, so it reports false rather
// than an error.
func (r *Repository) BySlug(typ Type, slug string) (Record, bool) {
	i, ok := r.index[recordKey{typ, slug}]
	if !ok {
		return Record{}, false
	}
	return r.records[i], true
}
