package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/elevara-labs/resourcehub/internal/content"
	"github.com/elevara-labs/resourcehub/internal/manifest"
)

func testServer() *Server {
	repo := content.New(manifest.Embedded(), content.Options{})
	return NewServer(func() *content.Repository { return repo }, "test")
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return tc.Text
}

func TestHandleSearch(t *testing.T) {
	s := testServer()
	ctx := context.Background()

	t.Run("matches", func(t *testing.T) {
		res, _, err := s.handleSearch(ctx, nil, searchInput{Query: "leadership"})
		if err != nil {
			t.Fatalf("handleSearch failed: %v", err)
		}
		text := resultText(t, res)
		var records []content.Record
		if err := json.Unmarshal([]byte(text), &records); err != nil {
			t.Fatalf("result is not JSON records: %v\n%s", err, text)
		}
		if len(records) == 0 {
			t.Fatal("expected results for leadership")
		}
		for _, r := range records {
			if r.Content != "" {
				t.Error("search results should omit bodies")
			}
		}
	})

	t.Run("type filter", func(t *testing.T) {
		res, _, _ := s.handleSearch(ctx, nil, searchInput{Type: "offer"})
		var records []content.Record
		if err := json.Unmarshal([]byte(resultText(t, res)), &records); err != nil {
			t.Fatal(err)
		}
		for _, r := range records {
			if r.Type != content.TypeOffer {
				t.Errorf("type filter leaked %q", r.Type)
			}
		}
	})

	t.Run("no matches", func(t *testing.T) {
		res, _, _ := s.handleSearch(ctx, nil, searchInput{Query: "zzz-nonexistent-zzz"})
		if !strings.Contains(resultText(t, res), "No matching content") {
			t.Errorf("unexpected empty-result text: %s", resultText(t, res))
		}
	})

	t.Run("bad sort", func(t *testing.T) {
		res, _, _ := s.handleSearch(ctx, nil, searchInput{Sort: "sideways"})
		if !strings.Contains(resultText(t, res), "Unknown sort") {
			t.Errorf("unexpected text: %s", resultText(t, res))
		}
	})
}

func TestHandleGet(t *testing.T) {
	s := testServer()
	ctx := context.Background()

	res, _, err := s.handleGet(ctx, nil, getInput{Type: "article", Slug: "five-minute-reset"})
	if err != nil {
		t.Fatalf("handleGet failed: %v", err)
	}
	var rec content.Record
	if err := json.Unmarshal([]byte(resultText(t, res)), &rec); err != nil {
		t.Fatalf("result is not a JSON record: %v", err)
	}
	if rec.Slug != "five-minute-reset" || rec.Content == "" {
		t.Errorf("unexpected record: slug=%q content len=%d", rec.Slug, len(rec.Content))
	}

	res, _, _ = s.handleGet(ctx, nil, getInput{Type: "article", Slug: "missing"})
	if !strings.Contains(resultText(t, res), "No article") {
		t.Errorf("unexpected miss text: %s", resultText(t, res))
	}

	res, _, _ = s.handleGet(ctx, nil, getInput{Type: "widget", Slug: "x"})
	if !strings.Contains(resultText(t, res), "Unknown type") {
		t.Errorf("unexpected bad-type text: %s", resultText(t, res))
	}
}

func TestHandleRelated(t *testing.T) {
	s := testServer()
	ctx := context.Background()

	res, _, err := s.handleRelated(ctx, nil, relatedInput{Type: "article", Slug: "five-minute-reset", Limit: 2})
	if err != nil {
		t.Fatalf("handleRelated failed: %v", err)
	}
	var records []content.Record
	if err := json.Unmarshal([]byte(resultText(t, res)), &records); err != nil {
		t.Fatalf("result is not JSON records: %v", err)
	}
	if len(records) == 0 || len(records) > 2 {
		t.Errorf("got %d related records, want 1-2", len(records))
	}
	for _, r := range records {
		if r.Type == content.TypeArticle && r.Slug == "five-minute-reset" {
			t.Error("reference record in its own relations")
		}
	}

	res, _, _ = s.handleRelated(ctx, nil, relatedInput{Type: "podcast", Slug: "missing"})
	if !strings.Contains(resultText(t, res), "No podcast") {
		t.Errorf("unexpected miss text: %s", resultText(t, res))
	}
}

func TestHandleListFilters(t *testing.T) {
	s := testServer()

	res, _, err := s.handleListFilters(context.Background(), nil, emptyInput{})
	if err != nil {
		t.Fatalf("handleListFilters failed: %v", err)
	}
	var got struct {
		Categories []string `json:"categories"`
		Tags       []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Categories) == 0 || len(got.Tags) == 0 {
		t.Errorf("filters empty: %+v", got)
	}
}
