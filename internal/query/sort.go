package query

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/standardbeagle/grimoire/internal/catalog"
)

// sortRecords orders records in place. Every mode is a total order: names
// break level ties and ids break name ties, so pagination is repeatable.
func sortRecords(records []catalog.Record, mode SortMode) {
	// Collators keep internal buffers; one per call.
	col := collate.New(language.BrazilianPortuguese)

	byName := func(a, b catalog.Record) int {
		if c := col.CompareString(primaryName(a), primaryName(b)); c != 0 {
			return c
		}
		switch {
		case a.Key() < b.Key():
			return -1
		case a.Key() > b.Key():
			return 1
		}
		return 0
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch mode {
		case SortLevelAsc:
			if a.RecordLevel() != b.RecordLevel() {
				return a.RecordLevel() < b.RecordLevel()
			}
		case SortLevelDesc:
			if a.RecordLevel() != b.RecordLevel() {
				return a.RecordLevel() > b.RecordLevel()
			}
		}
		return byName(a, b) < 0
	})
}

// primaryName is the Portuguese name, or English when no translation exists.
func primaryName(r catalog.Record) string {
	n := r.DisplayName()
	if n.PT != "" {
		return n.PT
	}
	return n.EN
}
