package content

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// InvalidContentError reports a document that could not be parsed at all.
type InvalidContentError struct {
	Slug string
	Err  error
}

func (e *InvalidContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid content document %q: %v", e.Slug, e.Err)
	}
	return fmt.Sprintf("invalid content document %q: empty source", e.Slug)
}

func (e *InvalidContentError) Unwrap() error { return e.Err }

// ParseDocument parses one raw blob into front-matter metadata and a body.
// The front-matter block is optional; without one the whole input is the
// body. Empty or whitespace-only input fails with an InvalidContentError
// naming the slug.
func ParseDocument(slug, raw string) (Document, error) {
	if strings.TrimSpace(raw) == "" {
		return Document{}, &InvalidContentError{Slug: slug}
	}

	var meta Meta
	body, err := frontmatter.Parse(strings.NewReader(raw), &meta)
	if err != nil {
		return Document{}, &InvalidContentError{Slug: slug, Err: err}
	}

	return Document{
		Meta: meta,
		Body: strings.TrimSpace(string(body)),
	}, nil
}

// readTime estimates reading minutes for a body: whitespace-delimited word
// count at 200 words per minute, rounded up.
func readTime(body string) int {
	words := len(strings.Fields(body))
	return (words + 199) / 200
}
