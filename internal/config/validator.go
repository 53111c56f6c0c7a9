package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/standardbeagle/grimoire/internal/catalog"
	gerrors "github.com/standardbeagle/grimoire/internal/errors"
	"github.com/standardbeagle/grimoire/internal/query"
)

// Validate reports every problem at once as an *errors.MultiError of
// *errors.ConfigError values.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field, value string, err error) {
		errs = append(errs, gerrors.NewConfigError(field, value, err))
	}

	if len(c.Dataset.Spells) == 0 && len(c.Dataset.Features) == 0 {
		bad("dataset", "", errors.New("at least one spells or features pattern is required"))
	}
	if c.Dataset.DebounceMs < 0 {
		bad("dataset.debounce_ms", strconv.Itoa(c.Dataset.DebounceMs), errors.New("cannot be negative"))
	}

	if c.Search.PageSize < 1 || c.Search.PageSize > query.MaxPageSize {
		bad("search.page_size", strconv.Itoa(c.Search.PageSize),
			fmt.Errorf("must be between 1 and %d", query.MaxPageSize))
	}
	if _, err := query.ParseSort(c.Search.Sort); err != nil {
		bad("search.sort", c.Search.Sort, err)
	}
	if c.Search.Fuzzy < 0 || c.Search.Fuzzy > 1 {
		bad("search.fuzzy", strconv.FormatFloat(c.Search.Fuzzy, 'g', -1, 64), errors.New("must be between 0 and 1"))
	}
	if err := c.Search.Boost.Validate(); err != nil {
		bad("search.boost", "", err)
	}

	switch catalog.Lang(c.Display.Lang) {
	case catalog.LangPT, catalog.LangEN:
	default:
		bad("display.lang", c.Display.Lang, fmt.Errorf("want %q or %q", catalog.LangPT, catalog.LangEN))
	}

	return gerrors.NewMultiError(errs).ErrOrNil()
}
