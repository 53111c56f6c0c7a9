// Package tags classifies records into a closed vocabulary of semantic tags.
//
// The vocabulary (TagKey) never changes at runtime. Classification combines
// author-supplied tags, structured spell/feature fields and a declarative table
// of free-text rules; the result is always reported in catalog order.
package tags

import "github.com/standardbeagle/grimoire/internal/catalog"

// TagKey is one member of the closed tag vocabulary.
type TagKey string

const (
	Healing        TagKey = "healing"
	Damage         TagKey = "damage"
	Banishment     TagKey = "banishment"
	Buff           TagKey = "buff"
	Debuff         TagKey = "debuff"
	Combat         TagKey = "combat"
	Communication  TagKey = "communication"
	Control        TagKey = "control"
	Creation       TagKey = "creation"
	Detection      TagKey = "detection"
	Environment    TagKey = "environment"
	Exploration    TagKey = "exploration"
	Foreknowledge  TagKey = "foreknowledge"
	Shapechanging  TagKey = "shapechanging"
	Social         TagKey = "social"
	Summon         TagKey = "summon"
	Transformation TagKey = "transformation"
	Defense        TagKey = "defense"
	Offense        TagKey = "offense"
	Passive        TagKey = "passive"
	Stealth        TagKey = "stealth"
	Mobility       TagKey = "mobility"
	Magic          TagKey = "magic"
	Negation       TagKey = "negation"
	Resource       TagKey = "resource"
	ResourceBurst  TagKey = "resource-burst"
	Recharge       TagKey = "recharge"
	Cleric         TagKey = "cleric"
	Ritual         TagKey = "ritual"
	Concentration  TagKey = "concentration"
	Action         TagKey = "action"
	BonusAction    TagKey = "bonus-action"
	Reaction       TagKey = "reaction"
	Touch          TagKey = "touch"
	Self           TagKey = "self"
	ShortRest      TagKey = "short-rest"
	LongRest       TagKey = "long-rest"
	Scrying        TagKey = "scrying"
	Summoning      TagKey = "summoning"
	Teleportation  TagKey = "teleportation"
	Utility        TagKey = "utility"
	Warding        TagKey = "warding"
)

// Label is the bilingual display text of a tag.
type Label struct {
	PT string `json:"pt"`
	EN string `json:"en"`
}

// In returns the label for lang.
func (l Label) In(lang catalog.Lang) string {
	if lang == catalog.LangEN {
		return l.EN
	}
	return l.PT
}

var labels = map[TagKey]Label{
	Healing:        {PT: "Cura", EN: "Healing"},
	Damage:         {PT: "Dano", EN: "Damage"},
	Banishment:     {PT: "Banimento", EN: "Banishment"},
	Buff:           {PT: "Buff", EN: "Buff"},
	Debuff:         {PT: "Debuff", EN: "Debuff"},
	Combat:         {PT: "Combate", EN: "Combat"},
	Communication:  {PT: "Comunicação", EN: "Communication"},
	Control:        {PT: "Controle", EN: "Control"},
	Creation:       {PT: "Criação", EN: "Creation"},
	Detection:      {PT: "Detecção", EN: "Detection"},
	Environment:    {PT: "Ambiente", EN: "Environment"},
	Exploration:    {PT: "Exploração", EN: "Exploration"},
	Foreknowledge:  {PT: "Presciência", EN: "Foreknowledge"},
	Shapechanging:  {PT: "Metamorfose", EN: "Shapechanging"},
	Social:         {PT: "Social", EN: "Social"},
	Summon:         {PT: "Invocação", EN: "Summon"},
	Transformation: {PT: "Transformação", EN: "Transformation"},
	Defense:        {PT: "Defesa", EN: "Defense"},
	Offense:        {PT: "Ofensiva", EN: "Offense"},
	Passive:        {PT: "Passiva", EN: "Passive"},
	Stealth:        {PT: "Furtividade", EN: "Stealth"},
	Mobility:       {PT: "Mobilidade", EN: "Mobility"},
	Magic:          {PT: "Magia", EN: "Magic"},
	Negation:       {PT: "Negação", EN: "Negation"},
	Resource:       {PT: "Recurso", EN: "Resource"},
	ResourceBurst:  {PT: "Explosão de Recursos", EN: "Resource Burst"},
	Recharge:       {PT: "Recarga", EN: "Recharge"},
	Cleric:         {PT: "Clérigo", EN: "Cleric"},
	Ritual:         {PT: "Ritual", EN: "Ritual"},
	Concentration:  {PT: "Concentração", EN: "Concentration"},
	Action:         {PT: "Ação", EN: "Action"},
	BonusAction:    {PT: "Ação Bônus", EN: "Bonus Action"},
	Reaction:       {PT: "Reação", EN: "Reaction"},
	Touch:          {PT: "Toque", EN: "Touch"},
	Self:           {PT: "Pessoal", EN: "Self"},
	ShortRest:      {PT: "Descanso Curto", EN: "Short Rest"},
	LongRest:       {PT: "Descanso Longo", EN: "Long Rest"},
	Scrying:        {PT: "Vidência", EN: "Scrying"},
	Summoning:      {PT: "Invocação", EN: "Summoning"},
	Teleportation:  {PT: "Teletransporte", EN: "Teleportation"},
	Utility:        {PT: "Utilidade", EN: "Utility"},
	Warding:        {PT: "Proteção", EN: "Warding"},
}

// order is the presentation order. Anything that lists tags iterates this,
// never a map or discovery order.
var order = []TagKey{
	Healing, Damage, Banishment, Buff, Debuff,
	Combat, Communication, Control, Creation, Detection,
	Environment, Exploration, Foreknowledge, Shapechanging, Social,
	Summon, Transformation, Defense, Offense, Passive,
	Stealth, Mobility, Magic, Negation, Resource,
	ResourceBurst, Recharge, Cleric, Ritual, Concentration,
	Action, BonusAction, Reaction, Touch, Self,
	ShortRest, LongRest, Scrying, Summoning, Teleportation,
	Utility, Warding,
}

var rank = func() map[TagKey]int {
	m := make(map[TagKey]int, len(order))
	for i, k := range order {
		m[k] = i
	}
	return m
}()

// Order returns a copy of the catalog order.
func Order() []TagKey {
	out := make([]TagKey, len(order))
	copy(out, order)
	return out
}

// Catalog returns a copy of the label table.
func Catalog() map[TagKey]Label {
	out := make(map[TagKey]Label, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}

// LabelOf returns the label of k and whether k is in the vocabulary.
func LabelOf(k TagKey) (Label, bool) {
	l, ok := labels[k]
	return l, ok
}

// Known reports whether k is in the vocabulary.
func Known(k TagKey) bool {
	_, ok := rank[k]
	return ok
}

// Parse resolves a key or a label/synonym in either language.
func Parse(s string) (TagKey, bool) {
	if Known(TagKey(s)) {
		return TagKey(s), true
	}
	return Canonical(s)
}

// Set is an unordered collection of tags; Ordered renders it.
type Set map[TagKey]struct{}

// Add inserts k if it belongs to the vocabulary.
func (s Set) Add(k TagKey) {
	if Known(k) {
		s[k] = struct{}{}
	}
}

// Has reports membership.
func (s Set) Has(k TagKey) bool {
	_, ok := s[k]
	return ok
}

// HasAny reports whether any of keys is present.
func (s Set) HasAny(keys ...TagKey) bool {
	for _, k := range keys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// Ordered returns the members in catalog order.
func (s Set) Ordered() []TagKey {
	out := make([]TagKey, 0, len(s))
	for _, k := range order {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// SortKeys returns keys in catalog order, dropping unknown keys and
// duplicates.
func SortKeys(keys []TagKey) []TagKey {
	s := make(Set, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s.Ordered()
}
