package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elevara-labs/resourcehub/internal/cli"
	"github.com/elevara-labs/resourcehub/internal/leads"
)

func leadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Inspect captured leads",
	}
	cmd.AddCommand(leadsListCmd())
	cmd.AddCommand(leadsCountCmd())
	return cmd
}

func openLeadStore() (*leads.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := leads.Open(cfg.Leads.DBPath)
	if err != nil {
		return nil, userError("Cannot open lead database",
			"Check leads.db_path in resourcehub.toml")
	}
	return store, nil
}

func leadsListCmd() *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List captured leads, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLeadStore()
			if err != nil {
				return err
			}
			defer store.Close()

			all, err := store.Recent(limit)
			if err != nil {
				return fmt.Errorf("list leads: %w", err)
			}
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(all)
			}
			if len(all) == 0 {
				fmt.Println("No leads captured yet.")
				return nil
			}
			for _, l := range all {
				line := fmt.Sprintf("%s%-5d%s %s  %s",
					cli.Dim, l.ID, cli.Reset,
					l.CreatedAt.Format("2006-01-02 15:04"), l.Email)
				if l.Archetype != "" {
					line += fmt.Sprintf("  %s%s%s", cli.Cyan, l.Archetype, cli.Reset)
				}
				if l.Source != "" {
					line += fmt.Sprintf("  %s(%s)%s", cli.Dim, l.Source, cli.Reset)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum leads to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func leadsCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show the total number of captured leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLeadStore()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Count()
			if err != nil {
				return fmt.Errorf("count leads: %w", err)
			}
			fmt.Printf("%s leads\n", cli.FormatNumber(n))
			return nil
		},
	}
}
