package tags

import (
	"strings"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/textnorm"
)

// Assignment maps a composite record key ("kind:id") to its ordered tags.
// It is rebuilt wholesale whenever the record set changes.
type Assignment map[string][]TagKey

// Of returns the tags of a record, or nil.
func (a Assignment) Of(r catalog.Record) []TagKey {
	return a[r.Key()]
}

// HasAll reports whether the record identified by key carries every tag in want.
// An empty want is always satisfied.
func (a Assignment) HasAll(key string, want []TagKey) bool {
	if len(want) == 0 {
		return true
	}
	have := a[key]
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// BuildAssignment classifies every record.
func BuildAssignment(records []catalog.Record) Assignment {
	out := make(Assignment, len(records))
	for _, r := range records {
		out[r.Key()] = Classify(r)
	}
	return out
}

// Classify dispatches on the record variant. Unknown implementations get the
// explicit and free-text passes only.
func Classify(r catalog.Record) []TagKey {
	switch v := r.(type) {
	case *catalog.Spell:
		return ClassifySpell(v)
	case *catalog.Feature:
		return ClassifyFeature(v)
	}
	found := MapExplicit(r.RawTags())
	applyRules(found, FreeTextRules, bodyTexts(r.Body()))
	return found.Ordered()
}

// ClassifySpell derives the tags of a spell.
func ClassifySpell(s *catalog.Spell) []TagKey {
	if s == nil {
		return nil
	}
	found := MapExplicit(s.Tags)

	if s.Ritual {
		found.Add(Ritual)
	}
	if s.Concentration {
		found.Add(Concentration)
	}
	applyTiming(found, s.CastingTime)
	applyRange(found, s.Range)

	applyRules(found, FreeTextRules, bodyTexts(s.Text))
	return found.Ordered()
}

// ClassifyFeature derives the tags of a class feature.
func ClassifyFeature(f *catalog.Feature) []TagKey {
	if f == nil {
		return nil
	}
	found := MapExplicit(f.Tags)

	applyTiming(found, f.ActionText())
	if f.Uses != "" {
		applyRules(found, UsesRules, []string{textnorm.Normalize(f.Uses)})
	}

	applyRules(found, FreeTextRules, bodyTexts(f.Text))
	return found.Ordered()
}

// Timing resolves an action-timing field to at most one marker.
// Priority is reaction, then bonus action, then action.
func Timing(field catalog.LangString) (TagKey, bool) {
	text := textnorm.Normalize(field.PT + " " + field.EN)
	switch {
	case text == "":
		return "", false
	case strings.Contains(text, "reaction"), strings.Contains(text, "reacao"):
		return Reaction, true
	case strings.Contains(text, "bonus") && hasAction(text):
		return BonusAction, true
	case hasAction(text):
		return Action, true
	}
	return "", false
}

func hasAction(text string) bool {
	return strings.Contains(text, "action") || strings.Contains(text, "acao")
}

// applyTiming sets the timing marker and clears the others, so an explicit
// "action" tag cannot survive alongside a bonus-action casting time.
func applyTiming(found Set, field catalog.LangString) {
	k, ok := Timing(field)
	if !ok {
		return
	}
	for _, t := range []TagKey{Action, BonusAction, Reaction} {
		delete(found, t)
	}
	found.Add(k)
}

func applyRange(found Set, field catalog.LangString) {
	text := textnorm.Normalize(field.PT + " " + field.EN)
	if strings.Contains(text, "touch") || strings.Contains(text, "toque") {
		found.Add(Touch)
	}
	if strings.Contains(text, "self") || strings.Contains(text, "pessoal") {
		found.Add(Self)
	}
}

func applyRules(found Set, rules []Rule, texts []string) {
	for _, r := range rules {
		if found.Has(r.Tag) {
			continue
		}
		if r.Fires(found, texts...) {
			found.Add(r.Tag)
		}
	}
}

func bodyTexts(body catalog.LangString) []string {
	return []string{textnorm.Normalize(body.PT), textnorm.Normalize(body.EN)}
}
