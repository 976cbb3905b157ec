// Package content implements the resource center core: parsing markdown
// documents with front-matter into typed records, and querying them by
// filter, fuzzy text search, sort order, and topical relatedness.
package content

import "time"

// Type identifies the kind of content a record holds.
type Type string

const (
	TypeArticle Type = "article"
	TypePodcast Type = "podcast"
	TypeOffer   Type = "offer"
)

// TypeForGroup maps a plural manifest group name to a record type.
// Returns "" for unknown groups.
func TypeForGroup(group string) Type {
	switch group {
	case "articles":
		return TypeArticle
	case "podcasts":
		return TypePodcast
	case "offers":
		return TypeOffer
	}
	return ""
}

// Meta holds parsed front-matter fields. Documents declare only the fields
// that apply to their type; the rest stay zero.
type Meta struct {
	Title         string   `yaml:"title"`
	PublishDate   string   `yaml:"publishDate"`
	Author        string   `yaml:"author"`
	Excerpt       string   `yaml:"excerpt"`
	Categories    []string `yaml:"categories"`
	Tags          []string `yaml:"tags"`
	FeaturedImage string   `yaml:"featuredImage"`
	CoverImage    string   `yaml:"coverImage"`
	Duration      string   `yaml:"duration"`
	AudioURL      string   `yaml:"audioUrl"`
	EmbedCode     string   `yaml:"embedCode"`
	Price         string   `yaml:"price"`
	CTALabel      string   `yaml:"ctaLabel"`
	CTAURL        string   `yaml:"ctaUrl"`
}

// Document is one parsed raw blob: front-matter plus trimmed body.
type Document struct {
	Meta Meta
	Body string
}

// Record is one retrievable content item. Records are read-only value
// objects; the identity key is (Type, Slug).
type Record struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Type          Type      `json:"type"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	PublishDate   time.Time `json:"publish_date,omitzero"`
	Author        string    `json:"author,omitempty"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Categories    []string  `json:"categories,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	ReadTime      int       `json:"read_time,omitempty"` // minutes, articles only
	FeaturedImage string    `json:"featured_image,omitempty"`
	CoverImage    string    `json:"cover_image,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	AudioURL      string    `json:"audio_url,omitempty"`
	EmbedCode     string    `json:"embed_code,omitempty"`
	Price         string    `json:"price,omitempty"`
	CTALabel      string    `json:"cta_label,omitempty"`
	CTAURL        string    `json:"cta_url,omitempty"`
}
