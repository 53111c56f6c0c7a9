package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/grimoire/internal/config"
	"github.com/standardbeagle/grimoire/internal/dataset"
	"github.com/standardbeagle/grimoire/internal/debug"
	"github.com/standardbeagle/grimoire/internal/display"
	"github.com/standardbeagle/grimoire/internal/session"
	"github.com/standardbeagle/grimoire/internal/version"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(c.String("root"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Apply(config.Overrides{
		Spells:   c.StringSlice("data-spells"),
		Features: c.StringSlice("data-features"),
		PageSize: c.Int("page-size"),
		Sort:     c.String("sort"),
		Lang:     c.String("lang"),
		Watch:    c.Bool("watch"),
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadCatalog reads the configured dataset into a fresh session.
func loadCatalog(ctx context.Context, cfg *config.Config) (*session.Catalog, *dataset.Dataset, error) {
	start := time.Now()
	ds, err := dataset.Load(ctx, sources(cfg))
	if err != nil {
		return nil, nil, err
	}

	cat := session.New(cfg.IndexOptions())
	if _, err := cat.Load(ds.Spells, ds.Features); err != nil {
		_ = cat.Close()
		return nil, nil, err
	}
	debug.LogLoad("loaded %d spells and %d features from %d files in %v\n",
		len(ds.Spells), len(ds.Features), len(ds.Files), time.Since(start))
	return cat, ds, nil
}

func sources(cfg *config.Config) dataset.Sources {
	return dataset.Sources{Spells: cfg.SpellGlobs(), Features: cfg.FeatureGlobs()}
}

func newFormatter(c *cli.Context, cfg *config.Config) *display.Formatter {
	format := display.FormatText
	if c.Bool("json") {
		format = display.FormatJSON
	}
	return display.NewFormatter(display.FormatterOptions{
		Format:   format,
		Lang:     cfg.Lang(),
		ShowText: c.Bool("text"),
	})
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   version.Name,
		Usage:                  "Bilingual spell and class feature catalog",
		Version:                version.FullInfo(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml); default looks in --root",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory holding the config file and dataset",
				Value:   ".",
			},
			&cli.StringSliceFlag{
				Name:    "data-spells",
				Aliases: []string{"spells"},
				Usage:   "Spell file globs (e.g., --spells 'data/spells/**/*.json')",
			},
			&cli.StringSliceFlag{
				Name:    "data-features",
				Aliases: []string{"features"},
				Usage:   "Class feature file globs",
			},
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "Display language: pt or en",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write structured debug logs to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				debug.SetEnabled(true)
				debug.SetDebugOutput(os.Stderr)
			}
			return nil
		},
		Commands: []*cli.Command{
			searchCommand(),
			{
				Name:   "tags",
				Usage:  "List the tag catalog with record counts",
				Flags:  []cli.Flag{kindFlag()},
				Action: tagsCommand,
			},
			{
				Name:   "facets",
				Usage:  "List filterable levels, classes, schools and tags",
				Flags:  []cli.Flag{kindFlag()},
				Action: facetsCommand,
			},
			{
				Name:      "classify",
				Usage:     "Show one record with its derived tags",
				ArgsUsage: "<kind:id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "text", Usage: "Include the description"},
				},
				Action: classifyCommand,
			},
			watchCommand(),
			{
				Name:   "mcp",
				Usage:  "Serve the catalog over MCP on stdio",
				Action: mcpCommand,
			},
		},
	}
}

func kindFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Usage:   "Record kind: spell or feature (default: both)",
	}
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}
	_ = debug.CloseDebugLog()
}
