package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/grimoire/internal/config"
	"github.com/standardbeagle/grimoire/internal/dataset"
	"github.com/standardbeagle/grimoire/internal/debug"
	"github.com/standardbeagle/grimoire/internal/mcp"
	"github.com/standardbeagle/grimoire/internal/session"
	"github.com/standardbeagle/grimoire/pkg/pathutil"
)

func watchCommand() *cli.Command {
	flags := append(searchFlags(), &cli.IntFlag{
		Name:   "exit-after",
		Usage:  "Stop after this many reloads (0 = run until interrupted)",
		Hidden: true,
	})
	return &cli.Command{
		Name:      "watch",
		Aliases:   []string{"w"},
		Usage:     "Rerun a search whenever the dataset files change",
		ArgsUsage: "[query]",
		Flags:     flags,
		Action:    watchAction,
	}
}

func watchAction(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	st, err := buildState(c, cfg)
	if err != nil {
		return err
	}
	cat, _, err := loadCatalog(c.Context, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := runSearch(c, cfg, cat, st); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limit := c.Int("exit-after")
	reloads := 0
	w, err := startReloader(ctx, cfg, cat, func(changed []string, loadErr error) {
		out := c.App.Writer
		fmt.Fprintf(out, "\n-- changed: %s\n", strings.Join(pathutil.ToRelativeAll(changed, cfg.Root), ", "))
		if loadErr != nil {
			fmt.Fprintf(c.App.ErrWriter, "reload failed, keeping previous data: %v\n", loadErr)
		} else if err := runSearch(c, cfg, cat, st); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "search failed: %v\n", err)
		}
		reloads++
		if limit > 0 && reloads >= limit {
			stop()
		}
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

// startReloader watches the configured dataset and swaps a fresh snapshot
// into cat after every batch of changes. A failed load leaves the previous
// snapshot in place. after, when set, runs on the watcher goroutine.
func startReloader(ctx context.Context, cfg *config.Config, cat *session.Catalog, after func(changed []string, err error)) (*dataset.Watcher, error) {
	src := sources(cfg)
	debounce := time.Duration(cfg.Dataset.DebounceMs) * time.Millisecond

	w, err := dataset.NewWatcher(src, debounce, func(changed []string) {
		ds, err := dataset.Load(ctx, src)
		if err == nil {
			var swapped bool
			if swapped, err = cat.Load(ds.Spells, ds.Features); err == nil {
				debug.LogLoad("reload after %d changed files, swapped=%v\n", len(changed), swapped)
			}
		}
		if err != nil {
			debug.LogLoad("reload failed: %v\n", err)
		}
		if after != nil {
			after(changed, err)
		}
	})
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}

func mcpCommand(c *cli.Context) error {
	// stdout carries the protocol
	debug.SetMCPMode(true)

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return debug.Fatal("failed to load config: %v\n", err)
	}
	cat, _, err := loadCatalog(c.Context, cfg)
	if err != nil {
		return debug.Fatal("failed to load dataset: %v\n", err)
	}
	defer cat.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Dataset.Watch {
		w, err := startReloader(ctx, cfg, cat, nil)
		if err != nil {
			debug.LogMCP("Warning: dataset watch disabled: %v\n", err)
		} else {
			defer w.Stop()
		}
	}

	server := mcp.NewServer(cat, cfg)
	if err := server.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
