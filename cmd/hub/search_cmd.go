package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elevara-labs/resourcehub/internal/cli"
	"github.com/elevara-labs/resourcehub/internal/content"
	"github.com/elevara-labs/resourcehub/internal/logger"
)

func searchCmd() *cobra.Command {
	var (
		typeFilter string
		category   string
		sortOrder  string
		jsonOut    bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the content catalog",
		Long: `Search articles, podcast episodes, and offers. Matching is fuzzy,
so minor misspellings still hit.

Examples:
  hub search leadership
  hub search --type article --sort oldest burnout
  hub search --category "Daily Practice"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(strings.Join(args, " "), typeFilter, category, sortOrder, jsonOut)
		},
	}
	cmd.Flags().StringVar(&typeFilter, "type", "", "Filter by type: article, podcast, or offer")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&sortOrder, "sort", "newest", "Sort order: newest, oldest, or title")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runSearch(query, typeFilter, category, sortOrder string, jsonOut bool) error {
	order, ok := parseSortOrder(sortOrder)
	if !ok {
		return userError(fmt.Sprintf("Unknown sort order %q", sortOrder),
			"Use newest, oldest, or title")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg, logger.NewNop())
	if err != nil {
		return err
	}

	results := repo.Query(content.QueryOptions{
		Text:     query,
		Type:     typeFilter,
		Category: category,
		Sort:     order,
	})

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(results)
	}
	if len(results) == 0 {
		fmt.Println("No matching content.")
		return nil
	}
	printRecords(results)
	return nil
}

func relatedCmd() *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "related [type] [slug]",
		Short: "Show content related to a record",
		Long: `Rank other content by shared categories and tags.

Example:
  hub related article five-minute-reset --limit 5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelated(args[0], args[1], limit, jsonOut)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of results (default 3)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func runRelated(rawType, slug string, limit int, jsonOut bool) error {
	typ, ok := parseContentType(rawType)
	if !ok {
		return userError(fmt.Sprintf("Unknown content type %q", rawType),
			"Use article, podcast, or offer")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openRepository(cfg, logger.NewNop())
	if err != nil {
		return err
	}

	if limit == 0 {
		limit = cfg.Search.RelatedLimit
	}
	results, found := repo.RelatedBySlug(typ, slug, limit)
	if !found {
		return userError(fmt.Sprintf("No %s with slug %q", typ, slug),
			"List slugs with: hub content list")
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(results)
	}
	if len(results) == 0 {
		fmt.Println("No related content shares categories or tags with this record.")
		return nil
	}
	printRecords(results)
	return nil
}

func printRecords(records []content.Record) {
	for _, r := range records {
		date := ""
		if !r.PublishDate.IsZero() {
			date = r.PublishDate.Format("2006-01-02")
		}
		fmt.Printf("%s%-8s%s %s%-10s%s %s%s%s\n",
			cli.Dim, r.Type, cli.Reset,
			cli.Dim, date, cli.Reset,
			cli.Bold, r.Title, cli.Reset)
		fmt.Printf("         %sslug:%s %s", cli.Dim, cli.Reset, r.Slug)
		if len(r.Categories) > 0 {
			fmt.Printf("  %s%s%s", cli.Cyan, strings.Join(r.Categories, ", "), cli.Reset)
		}
		fmt.Println()
		if r.Excerpt != "" {
			fmt.Printf("         %s\n", cli.Truncate(r.Excerpt, 80))
		}
	}
}

func parseSortOrder(raw string) (content.SortOrder, bool) {
	switch raw {
	case "", "newest":
		return content.SortNewest, true
	case "oldest":
		return content.SortOldest, true
	case "title":
		return content.SortTitle, true
	}
	return "", false
}

func parseContentType(raw string) (content.Type, bool) {
	typ := content.Type(raw)
	switch typ {
	case content.TypeArticle, content.TypePodcast, content.TypeOffer:
		return typ, true
	}
	return "", false
}
