// Package mcp exposes the resource center to MCP clients, so an assistant
// can search the catalog, read documents, and pull related resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/elevara-labs/resourcehub/internal/content"
)

// Server wires the content repository into MCP tools. The repository is
// resolved through a func so a live reload can swap snapshots underneath.
type Server struct {
	repo    func() *content.Repository
	version string
}

// NewServer builds an MCP server over the repository provider.
func NewServer(repo func() *content.Repository, version string) *Server {
	return &Server{repo: repo, version: version}
}

// Run serves MCP over stdio until the context is done.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "resourcehub",
		Version: s.version,
	}, nil)
	s.register(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_content",
		Description: "Search the resource center for articles, podcast episodes, and offers. Text matching is fuzzy, so minor misspellings still hit.\n\nArgs:\n  query: Search text matched against titles, excerpts, authors, categories, and tags\n  type: Optional filter: article, podcast, or offer ('all' or empty matches everything)\n  category: Optional category filter ('all' or empty matches everything)\n  sort: newest (default), oldest, or title\n\nReturns matching records as JSON, with slugs for follow-up lookups.",
	}, s.handleSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_content",
		Description: "Read one content record in full, including its markdown body.\n\nArgs:\n  type: article, podcast, or offer\n  slug: The record's slug (as returned by search_content)\n\nReturns the full record as JSON.",
	}, s.handleGet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "related_content",
		Description: "Find content topically related to a given record, ranked by shared categories and tags.\n\nArgs:\n  type: article, podcast, or offer\n  slug: The reference record's slug\n  limit: Number of results (default 3, max 20)\n\nReturns related records as JSON, best match first.",
	}, s.handleRelated)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_filters",
		Description: "List every category and tag in the catalog, for building filtered searches.\n\nReturns sorted category and tag lists as JSON.",
	}, s.handleListFilters)
}

// Tool input types

type searchInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Search text"`
	Type     string `json:"type,omitempty" jsonschema:"article, podcast, or offer"`
	Category string `json:"category,omitempty" jsonschema:"Category filter"`
	Sort     string `json:"sort,omitempty" jsonschema:"newest, oldest, or title"`
}

type getInput struct {
	Type string `json:"type" jsonschema:"article, podcast, or offer"`
	Slug string `json:"slug" jsonschema:"Record slug"`
}

type relatedInput struct {
	Type  string `json:"type" jsonschema:"article, podcast, or offer"`
	Slug  string `json:"slug" jsonschema:"Reference record slug"`
	Limit int    `json:"limit,omitempty" jsonschema:"Number of results (default 3, max 20)"`
}

type emptyInput struct{}

// Tool handlers

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, any, error) {
	sortOrder := content.SortNewest
	switch input.Sort {
	case "", "newest":
	case "oldest":
		sortOrder = content.SortOldest
	case "title":
		sortOrder = content.SortTitle
	default:
		return textResult(fmt.Sprintf("Unknown sort %q: use newest, oldest, or title.", input.Sort)), nil, nil
	}

	results := s.repo().Query(content.QueryOptions{
		Text:     input.Query,
		Type:     input.Type,
		Category: input.Category,
		Sort:     sortOrder,
	})
	if len(results) == 0 {
		return textResult("No matching content. Try a broader query or list_filters for valid filters."), nil, nil
	}

	// Bodies are large and rarely needed at search time.
	for i := range results {
		results[i].Content = ""
	}
	return jsonResult(results)
}

func (s *Server) handleGet(ctx context.Context, req *mcp.CallToolRequest, input getInput) (*mcp.CallToolResult, any, error) {
	typ, ok := parseType(input.Type)
	if !ok {
		return textResult(fmt.Sprintf("Unknown type %q: use article, podcast, or offer.", input.Type)), nil, nil
	}

	rec, found := s.repo().BySlug(typ, input.Slug)
	if !found {
		return textResult(fmt.Sprintf("No %s with slug %q.", typ, input.Slug)), nil, nil
	}
	return jsonResult(rec)
}

func (s *Server) handleRelated(ctx context.Context, req *mcp.CallToolRequest, input relatedInput) (*mcp.CallToolResult, any, error) {
	typ, ok := parseType(input.Type)
	if !ok {
		return textResult(fmt.Sprintf("Unknown type %q: use article, podcast, or offer.", input.Type)), nil, nil
	}

	limit := input.Limit
	if limit > 20 {
		limit = 20
	}
	related, found := s.repo().RelatedBySlug(typ, input.Slug, limit)
	if !found {
		return textResult(fmt.Sprintf("No %s with slug %q.", typ, input.Slug)), nil, nil
	}
	if len(related) == 0 {
		return textResult("No related content shares categories or tags with this record."), nil, nil
	}

	for i := range related {
		related[i].Content = ""
	}
	return jsonResult(related)
}

func (s *Server) handleListFilters(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	repo := s.repo()
	return jsonResult(map[string]any{
		"categories": repo.Categories(),
		"tags":       repo.Tags(),
	})
}

// Helpers

func parseType(raw string) (content.Type, bool) {
	typ := content.Type(raw)
	switch typ {
	case content.TypeArticle, content.TypePodcast, content.TypeOffer:
		return typ, true
	}
	return "", false
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(data any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return textResult(fmt.Sprintf("Error encoding result: %v", err)), nil, nil
	}
	return textResult(string(b)), nil, nil
}
