package tags

import "github.com/standardbeagle/grimoire/internal/textnorm"

// synonyms maps normalized author phrases, in either language, to canonical keys.
// Keys must already be in textnorm.Key form.
var synonyms = map[string]TagKey{
	"cura":                 Healing,
	"healing":              Healing,
	"dano":                 Damage,
	"damage":               Damage,
	"buff":                 Buff,
	"debuff":               Debuff,
	"banimento":            Banishment,
	"banishment":           Banishment,
	"combate":              Combat,
	"combat":               Combat,
	"comunicacao":          Communication,
	"communication":        Communication,
	"controle":             Control,
	"control":              Control,
	"criacao":              Creation,
	"creation":             Creation,
	"deteccao":             Detection,
	"detection":            Detection,
	"ambiente":             Environment,
	"environment":          Environment,
	"exploracao":           Exploration,
	"exploration":          Exploration,
	"presciencia":          Foreknowledge,
	"foreknowledge":        Foreknowledge,
	"metamorfose":          Shapechanging,
	"shapechanging":        Shapechanging,
	"social":               Social,
	"summon":               Summon,
	"ritual":               Ritual,
	"concentracao":         Concentration,
	"concentration":        Concentration,
	"acao":                 Action,
	"action":               Action,
	"acao bonus":           BonusAction,
	"bonus action":         BonusAction,
	"bonus-action":         BonusAction,
	"reacao":               Reaction,
	"reaction":             Reaction,
	"toque":                Touch,
	"touch":                Touch,
	"pessoal":              Self,
	"self":                 Self,
	"descanso curto":       ShortRest,
	"short rest":           ShortRest,
	"short-rest":           ShortRest,
	"descanso longo":       LongRest,
	"long rest":            LongRest,
	"long-rest":            LongRest,
	"videncia":             Scrying,
	"scrying":              Scrying,
	"invocacao":            Summoning,
	"summoning":            Summoning,
	"defesa":               Defense,
	"defense":              Defense,
	"ofensiva":             Offense,
	"offense":              Offense,
	"passiva":              Passive,
	"passive":              Passive,
	"furtividade":          Stealth,
	"stealth":              Stealth,
	"mobilidade":           Mobility,
	"mobility":             Mobility,
	"magia":                Magic,
	"magic":                Magic,
	"negacao":              Negation,
	"negation":             Negation,
	"recurso":              Resource,
	"resource":             Resource,
	"explosao-de-recursos": ResourceBurst,
	"explosao de recursos": ResourceBurst,
	"resource burst":       ResourceBurst,
	"resource-burst":       ResourceBurst,
	"recarga":              Recharge,
	"recharge":             Recharge,
	"clerigo":              Cleric,
	"cleric":               Cleric,
	"transformacao":        Transformation,
	"transformation":       Transformation,
	"utilidade":            Utility,
	"utility":              Utility,
	"teletransporte":       Teleportation,
	"teleportation":        Teleportation,
	"protecao":             Warding,
	"warding":              Warding,
}

// Canonical maps a free-form author tag to its canonical key.
// Unrecognized phrases report false.
func Canonical(raw string) (TagKey, bool) {
	k, ok := synonyms[textnorm.Key(raw)]
	return k, ok
}

// MapExplicit translates author tags, silently dropping unknown ones.
func MapExplicit(raw []string) Set {
	found := make(Set, len(raw))
	for _, r := range raw {
		if k, ok := Canonical(r); ok {
			found.Add(k)
		}
	}
	return found
}
