package tags

import (
	"regexp"
	"strings"
)

// Pattern matches normalized (lowercase, accent-free) text.
type Pattern interface {
	Match(text string) bool
	String() string
}

type substr string

func (s substr) Match(text string) bool { return strings.Contains(text, string(s)) }
func (s substr) String() string         { return string(s) }

type regex struct{ re *regexp.Regexp }

func (r regex) Match(text string) bool { return r.re.MatchString(text) }
func (r regex) String() string         { return r.re.String() }

// Sub builds a substring pattern. The needle must already be normalized.
func Sub(needle string) Pattern { return substr(needle) }

// Re builds a regular expression pattern. It panics on an invalid expression,
// so it is meant for package-level tables.
func Re(expr string) Pattern { return regex{re: regexp.MustCompile(expr)} }

// Subs builds one substring pattern per needle.
func Subs(needles ...string) []Pattern {
	out := make([]Pattern, len(needles))
	for i, n := range needles {
		out[i] = Sub(n)
	}
	return out
}

// Rule adds Tag when any Require pattern matches, no Exclude pattern matches
// and the record carries none of the Unless tags yet.
type Rule struct {
	Tag     TagKey
	Require []Pattern
	Exclude []Pattern
	Unless  []TagKey
}

// Fires evaluates the rule against the normalized texts of a record. A match
// in any text satisfies Require; a match in any text triggers Exclude.
func (r Rule) Fires(have Set, texts ...string) bool {
	if have.HasAny(r.Unless...) {
		return false
	}
	if !anyMatch(r.Require, texts) {
		return false
	}
	return !anyMatch(r.Exclude, texts)
}

func anyMatch(patterns []Pattern, texts []string) bool {
	for _, p := range patterns {
		for _, t := range texts {
			if t != "" && p.Match(t) {
				return true
			}
		}
	}
	return false
}

// FreeTextRules is evaluated in order over the body text of every record.
// Rules with Unless see the tags accumulated by earlier rules, so Utility
// stays last.
var FreeTextRules = []Rule{
	{
		Tag: Healing,
		Require: []Pattern{
			Re(`\bregains?\b[^.]*\bhit points?\b`),
			Re(`\brecupera(m|r)?\b[^.]*\bpontos de vida\b`),
			Re(`\bheal(s|ed|ing)?\b`),
			Re(`\bcura(r|m|s)?\b`),
		},
		Exclude: []Pattern{
			Re(`\b(can't|cannot|can not) regain hit points\b`),
			Re(`\bnao (pode|podem) recuperar pontos de vida\b`),
		},
	},
	{
		Tag: Damage,
		Require: []Pattern{
			Re(`\bdamage\b`),
			Re(`\bdano\b`),
		},
	},
	{
		Tag: Summoning,
		Require: []Pattern{
			Re(`\bsummon(s|ed|ing)?\b`),
			Re(`\bconjures?\b`),
			Re(`\b(invoca|conjura)(r|m)?\b`),
		},
	},
	{
		Tag:     ShortRest,
		Require: Subs("short rest", "descanso curto"),
	},
	{
		Tag:     LongRest,
		Require: Subs("long rest", "descanso longo"),
	},
	{
		Tag:     Teleportation,
		Require: Subs("teleport", "teletransport"),
	},
	{
		Tag: Detection,
		Require: []Pattern{
			Re(`\bdetect`),
			Re(`\bsense the presence\b`),
			Re(`\bpercebe a presenca\b`),
		},
	},
	{
		Tag: Communication,
		Require: []Pattern{
			Re(`\btelepath`),
			Re(`\btelepati`),
			Re(`\bcommunicate\b`),
			Re(`\bcomunica(r|m)?\b`),
			Re(`\bmessages?\b`),
			Re(`\bmensage(m|ns)\b`),
		},
	},
	{
		Tag: Debuff,
		Require: []Pattern{
			Re(`\bdisadvantage on\b`),
			Re(`\bdesvantagem (em|nas|nos|no|na)\b`),
			Re(`\b(frightened|poisoned|blinded|deafened)\b`),
			Re(`\b(amedrontad|envenenad|surd)[oa]s?\b`),
			Re(`\bceg[oa]s?\b`),
			Re(`\bsubtract\b`),
			Re(`\bsubtrai\b`),
		},
	},
	{
		Tag: Control,
		Require: []Pattern{
			Re(`\b(restrained|paralyzed|stunned|charmed|incapacitated|prone)\b`),
			Re(`\b(impedid|paralisad|atordoad|enfeiticad|incapacitad|derrubad)[oa]s?\b`),
		},
	},
	{
		Tag: Buff,
		Require: []Pattern{
			Re(`\+\d+ (bonus|de bonus)\b`),
			Re(`\bbonus (to|on)\b`),
			Re(`\bbonus (em|nas|nos|de \+?\d)`),
			Re(`\badvantage on\b`),
			Re(`\bvantagem (em|nas|nos|no|na)\b`),
			Sub("temporary hit points"),
			Sub("pontos de vida temporarios"),
			Re(`\b(armor class|speed|ac)\b[^.]*\b(increases?|raised?)\b[^.]*\bby \d+\b`),
			Re(`\b(ca|deslocamento)\b[^.]*\b(aumenta|aumentam)\b[^.]*\bem \d+\b`),
		},
		Exclude: []Pattern{
			Re(`\bdamage\b[^.]*\bincreases?\b`),
			Re(`\bdano\b[^.]*\baumenta(m)?\b`),
		},
	},
	{
		Tag: Utility,
		Require: []Pattern{
			Re(`\bdetect`),
			Re(`\bdetecta`),
			Re(`\b(open|opens|unlock|unlocks|lock|locks)\b`),
			Re(`\b(abre|abrir|destranca|destrancar|tranca|trancar|fechadura)\b`),
			Sub("invisib"),
			Sub("invisivel"),
			Sub("teleport"),
			Sub("teletransport"),
			Re(`\bmessages?\b`),
			Re(`\bmensage(m|ns)\b`),
		},
		Unless: []TagKey{Healing, Damage},
	},
}

// UsesRules scans the feature "uses" field.
var UsesRules = []Rule{
	{Tag: ShortRest, Require: Subs("short rest", "descanso curto")},
	{Tag: LongRest, Require: Subs("long rest", "descanso longo")},
}
