// Package display renders result pages, tag chips and facets for the CLI.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/query"
	"github.com/standardbeagle/grimoire/internal/tags"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// FormatterOptions controls rendering.
type FormatterOptions struct {
	Format Format
	Lang   catalog.Lang
	// ShowText includes the record body in text output.
	ShowText bool
	// Indent prefixes detail lines in text output.
	Indent string
}

// TagLookup returns the derived tags of a record key.
type TagLookup func(key string) []tags.TagKey

type Formatter struct {
	options FormatterOptions
}

// NewFormatter fills in defaults: text output, Portuguese, two-space indent.
func NewFormatter(options FormatterOptions) *Formatter {
	if options.Format == "" {
		options.Format = FormatText
	}
	if options.Lang == "" {
		options.Lang = catalog.LangPT
	}
	if options.Indent == "" {
		options.Indent = "  "
	}
	return &Formatter{options: options}
}

// Options returns the effective options.
func (f *Formatter) Options() FormatterOptions { return f.options }

// RecordView is the serialized form of one record.
type RecordView struct {
	Key        string         `json:"key"`
	Kind       catalog.Kind   `json:"kind"`
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	AltName    string         `json:"altName,omitempty"`
	Level      int            `json:"level"`
	LevelLabel string         `json:"levelLabel"`
	Classes    []string       `json:"classes,omitempty"`
	School     string         `json:"school,omitempty"`
	Pills      []catalog.Pill `json:"pills"`
	Tags       []Chip         `json:"tags"`
	Text       string         `json:"text,omitempty"`
}

// PageView is the serialized form of a result page.
type PageView struct {
	Records     []RecordView       `json:"records"`
	Total       int                `json:"total"`
	Meta        query.Meta         `json:"meta"`
	Exact       bool               `json:"exact,omitempty"`
	Suggestions []query.Suggestion `json:"suggestions,omitempty"`
}

// Chip is a tag rendered for display.
type Chip struct {
	Key   tags.TagKey `json:"key"`
	Label string      `json:"label"`
}

// Chips renders assigned tags in catalog order.
func Chips(assigned []tags.TagKey, lang catalog.Lang) []Chip {
	ordered := tags.SortKeys(assigned)
	out := make([]Chip, 0, len(ordered))
	for _, k := range ordered {
		l, _ := tags.LabelOf(k)
		out = append(out, Chip{Key: k, Label: l.In(lang)})
	}
	return out
}

// View builds the serialized form of r.
func (f *Formatter) View(r catalog.Record, assigned []tags.TagKey) RecordView {
	lang := f.options.Lang
	other := catalog.LangEN
	if lang == catalog.LangEN {
		other = catalog.LangPT
	}

	name := r.DisplayName()
	v := RecordView{
		Key:     r.Key(),
		Kind:    r.Kind(),
		ID:      r.RecordID(),
		Name:    firstNonEmpty(name.In(lang), name.In(other)),
		Level:   r.RecordLevel(),
		Classes: r.Classes(),
		School:  r.School().In(lang),
		Pills:   catalog.BuildPills(r, lang),
		Tags:    Chips(assigned, lang),
	}
	if alt := name.In(other); alt != "" && alt != v.Name {
		v.AltName = alt
	}
	if r.Kind() == catalog.KindSpell {
		v.LevelLabel = catalog.FormatSpellLevel(r.RecordLevel(), lang)
	} else {
		v.LevelLabel = catalog.FormatFeatureLevel(r.RecordLevel(), lang)
	}
	if f.options.ShowText {
		v.Text = firstNonEmpty(r.Body().In(lang), r.Body().In(other))
	}
	return v
}

// Page writes a result page. suggestions are shown only for empty pages.
func (f *Formatter) Page(w io.Writer, res query.Result, lookup TagLookup, suggestions []query.Suggestion) error {
	page := PageView{
		Records: make([]RecordView, 0, len(res.Records)),
		Total:   res.Total,
		Meta:    res.Meta,
		Exact:   res.Exact,
	}
	for _, r := range res.Records {
		var assigned []tags.TagKey
		if lookup != nil {
			assigned = lookup(r.Key())
		}
		page.Records = append(page.Records, f.View(r, assigned))
	}
	if res.Total == 0 {
		page.Suggestions = suggestions
	}

	if f.options.Format == FormatJSON {
		return writeJSON(w, page)
	}
	return f.pageText(w, page)
}

func (f *Formatter) pageText(w io.Writer, page PageView) error {
	var sb strings.Builder
	en := f.options.Lang == catalog.LangEN

	if page.Total == 0 {
		sb.WriteString(pick(en, "Nenhum resultado.\n", "No results.\n"))
		if len(page.Suggestions) > 0 {
			sb.WriteString(pick(en, "Você quis dizer: ", "Did you mean: "))
			names := make([]string, len(page.Suggestions))
			for i, s := range page.Suggestions {
				names[i] = firstNonEmpty(s.Name.In(f.options.Lang), s.Name.PT)
			}
			sb.WriteString(strings.Join(names, ", "))
			sb.WriteString("?\n")
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	for _, v := range page.Records {
		f.recordText(&sb, v)
	}
	fmt.Fprintf(&sb, pick(en, "Página %d de %d (%d resultados)\n", "Page %d of %d (%d results)\n"),
		page.Meta.Page, page.Meta.TotalPages, page.Total)

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *Formatter) recordText(sb *strings.Builder, v RecordView) {
	sb.WriteString(v.Name)
	if v.AltName != "" {
		fmt.Fprintf(sb, " (%s)", v.AltName)
	}
	fmt.Fprintf(sb, " [%s]\n", v.Key)

	labels := make([]string, len(v.Pills))
	for i, p := range v.Pills {
		labels[i] = p.Label
	}
	if len(labels) > 0 {
		fmt.Fprintf(sb, "%s%s\n", f.options.Indent, strings.Join(labels, " · "))
	}
	if len(v.Classes) > 0 || v.School != "" {
		parts := append([]string{}, v.Classes...)
		if v.School != "" {
			parts = append([]string{v.School}, parts...)
		}
		fmt.Fprintf(sb, "%s%s\n", f.options.Indent, strings.Join(parts, ", "))
	}
	if len(v.Tags) > 0 {
		fmt.Fprintf(sb, "%s%s\n", f.options.Indent, chipText(v.Tags))
	}
	if v.Text != "" {
		fmt.Fprintf(sb, "%s%s\n", f.options.Indent, v.Text)
	}
	sb.WriteString("\n")
}

// Record writes a single record with its tags.
func (f *Formatter) Record(w io.Writer, r catalog.Record, assigned []tags.TagKey) error {
	v := f.View(r, assigned)
	if f.options.Format == FormatJSON {
		return writeJSON(w, v)
	}
	var sb strings.Builder
	f.recordText(&sb, v)
	_, err := io.WriteString(w, sb.String())
	return err
}

// TagEntry is one row of the tag catalog listing.
type TagEntry struct {
	Key   tags.TagKey `json:"key"`
	PT    string      `json:"pt"`
	EN    string      `json:"en"`
	Count int         `json:"count"`
}

// TagCatalog writes every known tag with how many records carry it.
func (f *Formatter) TagCatalog(w io.Writer, counts map[tags.TagKey]int) error {
	entries := make([]TagEntry, 0, len(tags.Order()))
	for _, k := range tags.Order() {
		l, _ := tags.LabelOf(k)
		entries = append(entries, TagEntry{Key: k, PT: l.PT, EN: l.EN, Count: counts[k]})
	}
	if f.options.Format == FormatJSON {
		return writeJSON(w, entries)
	}

	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%-16s %-28s %4d\n", e.Key, tags.Label{PT: e.PT, EN: e.EN}.In(f.options.Lang), e.Count)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Facets writes the facet values of one kind.
func (f *Formatter) Facets(w io.Writer, kind catalog.Kind, facets query.Facets) error {
	if f.options.Format == FormatJSON {
		return writeJSON(w, facets)
	}

	en := f.options.Lang == catalog.LangEN
	var sb strings.Builder

	levels := make([]string, len(facets.Levels))
	for i, l := range facets.Levels {
		if kind == catalog.KindSpell {
			levels[i] = catalog.FormatSpellLevel(l, f.options.Lang)
		} else {
			levels[i] = fmt.Sprint(l)
		}
	}
	fmt.Fprintf(&sb, "%s: %s\n", pick(en, "Níveis", "Levels"), strings.Join(levels, ", "))
	fmt.Fprintf(&sb, "%s: %s\n", pick(en, "Classes", "Classes"), strings.Join(facets.Classes, ", "))
	if len(facets.Schools) > 0 {
		schools := make([]string, len(facets.Schools))
		for i, s := range facets.Schools {
			schools[i] = s.In(f.options.Lang)
		}
		fmt.Fprintf(&sb, "%s: %s\n", pick(en, "Escolas", "Schools"), strings.Join(schools, ", "))
	}
	fmt.Fprintf(&sb, "Tags: %s\n", chipText(Chips(facets.Tags, f.options.Lang)))

	_, err := io.WriteString(w, sb.String())
	return err
}

func chipText(chips []Chip) string {
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = "#" + c.Label
	}
	return strings.Join(parts, " ")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func pick(en bool, pt, eng string) string {
	if en {
		return eng
	}
	return pt
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
