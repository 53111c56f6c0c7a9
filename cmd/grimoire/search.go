package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/config"
	"github.com/standardbeagle/grimoire/internal/query"
	"github.com/standardbeagle/grimoire/internal/session"
	"github.com/standardbeagle/grimoire/internal/tags"
)

const suggestionCount = 3

func searchFlags() []cli.Flag {
	return []cli.Flag{
		kindFlag(),
		&cli.IntSliceFlag{
			Name:    "level",
			Aliases: []string{"n"},
			Usage:   "Filter by level; repeat for several (--level 1 --level 2)",
		},
		&cli.StringFlag{
			Name:  "class",
			Usage: "Filter by class name, ignoring case and accents",
		},
		&cli.StringFlag{
			Name:  "school",
			Usage: "Filter by school (spells only), PT or EN",
		},
		&cli.StringSliceFlag{
			Name:    "tag",
			Aliases: []string{"t"},
			Usage:   "Require a tag; PT or EN label or key, repeatable",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "name-asc, level-asc or level-desc",
		},
		&cli.IntFlag{
			Name:    "page",
			Aliases: []string{"p"},
			Usage:   "Result page",
			Value:   1,
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "Results per page (1-100)",
		},
		&cli.BoolFlag{
			Name:  "text",
			Usage: "Include descriptions",
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search spells and class features",
		ArgsUsage: "[query]",
		Flags:     searchFlags(),
		Action: func(c *cli.Context) error {
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

			return runSearch(c, cfg, cat, st)
		},
	}
}

// buildState drives a filter state the same way an interactive client
// would, so flag order never matters.
func buildState(c *cli.Context, cfg *config.Config) (*query.State, error) {
	var kind catalog.Kind
	if k := c.String("kind"); k != "" {
		parsed, err := catalog.ParseKind(k)
		if err != nil {
			return nil, err
		}
		kind = parsed
	}

	st := query.NewState(kind)
	st.SetQuery(strings.Join(c.Args().Slice(), " "))
	st.SetLevels(c.IntSlice("level"))
	st.SetClass(c.String("class"))
	st.SetSchool(c.String("school"))

	var keys []tags.TagKey
	for _, raw := range c.StringSlice("tag") {
		k, ok := tags.Parse(raw)
		if !ok {
			return nil, fmt.Errorf("unknown tag %q (see 'grimoire tags')", raw)
		}
		keys = append(keys, k)
	}
	st.SetTags(keys)

	mode, err := query.ParseSort(cfg.Search.Sort)
	if err != nil {
		return nil, err
	}
	st.SetSort(mode)
	st.SetPageSize(cfg.Search.PageSize)
	st.SetPage(c.Int("page"))
	return st, nil
}

func runSearch(c *cli.Context, cfg *config.Config, cat *session.Catalog, st *query.State) error {
	if cat.PruneState(st) {
		fmt.Fprintln(c.App.ErrWriter, "note: filters with no matching records were dropped")
	}
	f := st.Filter()
	res := cat.Search(f)

	var suggestions []query.Suggestion
	if res.Total == 0 && strings.TrimSpace(f.Query) != "" {
		suggestions = cat.Suggest(f.Kind, f.Query, suggestionCount)
	}

	lookup := func(key string) []tags.TagKey {
		_, assigned, _ := cat.Tags(key)
		return assigned
	}
	return newFormatter(c, cfg).Page(c.App.Writer, res, lookup, suggestions)
}

func tagsCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	kind, err := optionalKind(c.String("kind"))
	if err != nil {
		return err
	}
	cat, _, err := loadCatalog(c.Context, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	return newFormatter(c, cfg).TagCatalog(c.App.Writer, cat.TagCounts(kind))
}

func facetsCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	kind, err := optionalKind(c.String("kind"))
	if err != nil {
		return err
	}
	cat, _, err := loadCatalog(c.Context, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	return newFormatter(c, cfg).Facets(c.App.Writer, kind, cat.Facets(kind))
}

func classifyCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: grimoire classify <kind:id>")
	}
	key := c.Args().First()
	kind, id, err := catalog.ParseKey(key)
	if err != nil {
		return err
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	cat, _, err := loadCatalog(c.Context, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	r, assigned, ok := cat.Tags(catalog.Key(kind, id))
	if !ok {
		return fmt.Errorf("no %s with id %q", kind, id)
	}
	return newFormatter(c, cfg).Record(c.App.Writer, r, assigned)
}

func optionalKind(s string) (catalog.Kind, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return catalog.ParseKind(s)
}
