// Package main is the entrypoint for the hub CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"golang.org/x/text/language"

	"github.com/elevara-labs/resourcehub/internal/config"
	"github.com/elevara-labs/resourcehub/internal/content"
	"github.com/elevara-labs/resourcehub/internal/logger"
	"github.com/elevara-labs/resourcehub/internal/manifest"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath string
	debugLog   bool
)

func main() {
	root := &cobra.Command{
		Use:   "hub",
		Short: "Elevara resource center engine",
		Long:  "hub — content catalog, search, quiz, and lead capture for the Elevara marketing site.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(versionCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(relatedCmd())
	root.AddCommand(contentCmd())
	root.AddCommand(leadsCmd())
	root.AddCommand(mcpCmd())

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default resourcehub.toml if present)")
	root.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hub version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("hub %s\n", Version)
			return nil
		},
	}
}

// hubError renders a message with a remediation hint, for mistakes a user
// can fix themselves.
type hubError struct {
	message string
	hint    string
}

func (e *hubError) Error() string {
	return fmt.Sprintf("%s\n  Hint: %s", e.message, e.hint)
}

func userError(message, hint string) error {
	return &hubError{message: message, hint: hint}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, userError("Cannot load configuration",
			fmt.Sprintf("Check the TOML syntax: %v", err))
	}
	return cfg, nil
}

func buildLogger() (logger.Logger, error) {
	log, err := logger.New(debugLog)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// loadEntries reads documents from the configured directory, or the
// compiled-in set when no directory is configured.
func loadEntries(cfg *config.Config) ([]manifest.Entry, error) {
	if cfg.Content.Dir == "" {
		return manifest.Embedded(), nil
	}
	entries, err := manifest.FromDir(cfg.Content.Dir)
	if err != nil {
		return nil, userError(
			fmt.Sprintf("Cannot read content dir %s", cfg.Content.Dir),
			"Set content.dir in resourcehub.toml to a directory with articles/, podcasts/, offers/")
	}
	return entries, nil
}

func collationTag(cfg *config.Config) language.Tag {
	if cfg.Search.Locale == "" {
		return language.Und
	}
	tag, err := language.Parse(cfg.Search.Locale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid search.locale %q, using default collation\n",
			cfg.Search.Locale)
		return language.Und
	}
	return tag
}

func openRepository(cfg *config.Config, log logger.Logger) (*content.Repository, error) {
	entries, err := loadEntries(cfg)
	if err != nil {
		return nil, err
	}
	return content.New(entries, content.Options{
		Logger:    log,
		Collation: collationTag(cfg),
	}), nil
}
