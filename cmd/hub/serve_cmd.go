package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/elevara-labs/resourcehub/internal/content"
	"github.com/elevara-labs/resourcehub/internal/leads"
	"github.com/elevara-labs/resourcehub/internal/logger"
	"github.com/elevara-labs/resourcehub/internal/manifest"
	"github.com/elevara-labs/resourcehub/internal/watcher"
	"github.com/elevara-labs/resourcehub/internal/web"
)

func serveCmd() *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resource center JSON API",
		Long: `Serve the content, quiz, and lead-capture API.

Examples:
  hub serve
  hub serve --addr 0.0.0.0:8080
  hub serve --watch    (reload when content.dir files change)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload content when files change (needs content.dir)")
	return cmd
}

func runServe(addr string, watch bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	if addr == "" {
		addr = cfg.Server.Addr
	}
	if watch && cfg.Content.Dir == "" {
		return userError("Watch mode needs a content directory",
			"Set content.dir in resourcehub.toml or HUB_CONTENT_DIR")
	}

	repo, err := openRepository(cfg, log)
	if err != nil {
		return err
	}

	store, err := leads.Open(cfg.Leads.DBPath)
	if err != nil {
		return userError("Cannot open lead database",
			"Check leads.db_path in resourcehub.toml points at a writable location")
	}
	defer store.Close()
	submitter := leads.NewForwarder(store, cfg.Leads.ForwardURL, log)

	server := web.NewServer(repo, submitter, log, Version)

	if watch {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reload := func() {
			entries, err := manifest.FromDir(cfg.Content.Dir)
			if err != nil {
				log.Error("content reload failed", logger.Error(err))
				return
			}
			fresh := content.New(entries, content.Options{
				Logger:    log,
				Collation: collationTag(cfg),
			})
			server.SetRepository(fresh)
			log.Info("content reloaded", logger.Int("records", fresh.Len()))
		}
		w := watcher.New(cfg.Content.Dir, 0, reload, log)
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("watcher stopped", logger.Error(err))
			}
		}()
	}

	return server.Serve(addr)
}
