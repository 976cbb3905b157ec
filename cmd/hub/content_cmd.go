package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elevara-labs/resourcehub/internal/cli"
	"github.com/elevara-labs/resourcehub/internal/content"
	"github.com/elevara-labs/resourcehub/internal/logger"
)

func contentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the content catalog",
	}
	cmd.AddCommand(contentListCmd())
	cmd.AddCommand(contentFiltersCmd())
	cmd.AddCommand(contentStatsCmd())
	cmd.AddCommand(contentValidateCmd())
	return cmd
}

func contentListCmd() *cobra.Command {
	var typeFilter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every record, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, err := openRepository(cfg, logger.NewNop())
			if err != nil {
				return err
			}
			records := repo.Query(content.QueryOptions{Type: typeFilter})
			if len(records) == 0 {
				fmt.Println("No content.")
				return nil
			}
			printRecords(records)
			return nil
		},
	}
	cmd.Flags().StringVar(&typeFilter, "type", "", "Filter by type: article, podcast, or offer")
	return cmd
}

func contentFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List distinct categories and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, err := openRepository(cfg, logger.NewNop())
			if err != nil {
				return err
			}
			fmt.Printf("%sCategories%s  %s\n", cli.Bold, cli.Reset,
				strings.Join(repo.Categories(), ", "))
			fmt.Printf("%sTags%s        %s\n", cli.Bold, cli.Reset,
				strings.Join(repo.Tags(), ", "))
			return nil
		},
	}
}

func contentStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, err := openRepository(cfg, logger.NewNop())
			if err != nil {
				return err
			}
			counts := repo.CountByType()
			fmt.Printf("Records:    %s\n", cli.FormatNumber(repo.Len()))
			fmt.Printf("Articles:   %s\n", cli.FormatNumber(counts[content.TypeArticle]))
			fmt.Printf("Podcasts:   %s\n", cli.FormatNumber(counts[content.TypePodcast]))
			fmt.Printf("Offers:     %s\n", cli.FormatNumber(counts[content.TypeOffer]))
			fmt.Printf("Categories: %s\n", cli.FormatNumber(len(repo.Categories())))
			fmt.Printf("Tags:       %s\n", cli.FormatNumber(len(repo.Tags())))
			return nil
		},
	}
}

func contentValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse every document and report the ones that fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			entries, err := loadEntries(cfg)
			if err != nil {
				return err
			}

			bad := 0
			for _, e := range entries {
				if content.TypeForGroup(e.Group) == "" {
					fmt.Printf("%sSKIP%s  %s/%s: unknown group\n", cli.Yellow, cli.Reset, e.Group, e.Slug)
					continue
				}
				if _, err := content.ParseDocument(e.Slug, e.Raw); err != nil {
					bad++
					var ice *content.InvalidContentError
					if errors.As(err, &ice) && ice.Unwrap() != nil {
						fmt.Printf("%sFAIL%s  %s/%s: %v\n", cli.Red, cli.Reset, e.Group, e.Slug, ice.Unwrap())
					} else {
						fmt.Printf("%sFAIL%s  %s/%s: empty document\n", cli.Red, cli.Reset, e.Group, e.Slug)
					}
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d documents failed validation", bad, len(entries))
			}
			fmt.Printf("%sOK%s    %d documents parse cleanly\n", cli.Green, cli.Reset, len(entries))
			return nil
		},
	}
}
