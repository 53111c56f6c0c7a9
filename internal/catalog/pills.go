package catalog

import (
	"fmt"
	"strings"
)

// PillKind lets the UI style a pill without inspecting its text.
type PillKind string

const (
	PillDefault  PillKind = "default"
	PillLevel    PillKind = "level"
	PillCasting  PillKind = "casting"
	PillRange    PillKind = "range"
	PillDuration PillKind = "duration"
)

// Pill is a short label shown on a card. Every pill has a kind; there is no
// bare-string form.
type Pill struct {
	Label string   `json:"label"`
	Kind  PillKind `json:"kind"`
}

// FormatSpellLevel renders a spell level ("Truque"/"Cantrip" for 0).
func FormatSpellLevel(level int, lang Lang) string {
	if lang == LangPT {
		if level == 0 {
			return "Truque"
		}
		return fmt.Sprintf("%dº Círculo", level)
	}
	if level == 0 {
		return "Cantrip"
	}
	return fmt.Sprintf("Level %d", level)
}

// FormatFeatureLevel renders a feature's class level.
func FormatFeatureLevel(level int, lang Lang) string {
	if lang == LangPT {
		return fmt.Sprintf("Nível %d", level)
	}
	return fmt.Sprintf("Level %d", level)
}

// BuildSpellPills returns the card pills for a spell in lang.
func BuildSpellPills(s *Spell, lang Lang) []Pill {
	pills := []Pill{
		{Label: FormatSpellLevel(s.Level, lang), Kind: PillLevel},
		{Label: s.CastingTime.In(lang), Kind: PillCasting},
		{Label: s.Range.In(lang), Kind: PillRange},
		{Label: s.Duration.In(lang), Kind: PillDuration},
	}
	if s.Ritual {
		pills = append(pills, Pill{Label: "Ritual", Kind: PillDefault})
	}
	if s.Concentration {
		label := "Concentration"
		if lang == LangPT {
			label = "Concentração"
		}
		pills = append(pills, Pill{Label: label, Kind: PillDefault})
	}
	return dropBlank(pills)
}

// BuildFeaturePills returns the card pills for a feature in lang.
func BuildFeaturePills(f *Feature, lang Lang) []Pill {
	pills := []Pill{
		{Label: FormatFeatureLevel(f.Level, lang), Kind: PillLevel},
		{Label: f.ActionText().In(lang), Kind: PillCasting},
	}
	if f.Uses != "" {
		prefix := "Uses"
		if lang == LangPT {
			prefix = "Usos"
		}
		pills = append(pills, Pill{Label: prefix + ": " + f.Uses, Kind: PillDefault})
	}
	return dropBlank(pills)
}

// BuildPills dispatches on the record variant.
func BuildPills(r Record, lang Lang) []Pill {
	switch v := r.(type) {
	case *Spell:
		return BuildSpellPills(v, lang)
	case *Feature:
		return BuildFeaturePills(v, lang)
	default:
		return nil
	}
}

func dropBlank(pills []Pill) []Pill {
	out := pills[:0]
	for _, p := range pills {
		if strings.TrimSpace(p.Label) != "" {
			out = append(out, p)
		}
	}
	return out
}
