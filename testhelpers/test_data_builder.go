package testhelpers

import "github.com/standardbeagle/grimoire/internal/catalog"

// SpellBuilder builds spells with valid defaults
// Usage:
//
//	s := testhelpers.NewSpell("fireball").Named("Bola de Fogo", "Fireball").Level(3).Build()
type SpellBuilder struct {
	s catalog.Spell
}

// NewSpell starts a level 1 spell whose names default to its id
func NewSpell(id string) *SpellBuilder {
	return &SpellBuilder{s: catalog.Spell{
		ID:         id,
		Name:       catalog.LangString{PT: id, EN: id},
		Level:      1,
		SchoolName: catalog.LangString{PT: "Evocação", EN: "Evocation"},
		ClassNames: []string{"Wizard"},
		Components: catalog.Components{Verbal: true, Somatic: true},
		Text:       catalog.LangString{PT: id, EN: id},
		Tags:       []string{},
		Source:     catalog.Source{Name: "SRD 5.1"},
	}}
}

func (b *SpellBuilder) Named(pt, en string) *SpellBuilder {
	b.s.Name = catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *SpellBuilder) Level(n int) *SpellBuilder {
	b.s.Level = n
	return b
}

func (b *SpellBuilder) School(pt, en string) *SpellBuilder {
	b.s.SchoolName = catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *SpellBuilder) Classes(classes ...string) *SpellBuilder {
	b.s.ClassNames = classes
	return b
}

func (b *SpellBuilder) Casting(pt, en string) *SpellBuilder {
	b.s.CastingTime = catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *SpellBuilder) Range(pt, en string) *SpellBuilder {
	b.s.Range = catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *SpellBuilder) Duration(pt, en string) *SpellBuilder {
	b.s.Duration = catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *SpellBuilder) Ritual() *SpellBuilder {
	b.s.Ritual = true
	return b
}

func (b *SpellBuilder) Concentration() *SpellBuilder {
	b.s.Concentration = true
	return b
}

func (b *SpellBuilder) Text(pt, en string) *SpellBuilder {
	b.s.Text = catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *SpellBuilder) Tags(tags ...string) *SpellBuilder {
	b.s.Tags = tags
	return b
}

// Build returns a copy so the builder can be reused
func (b *SpellBuilder) Build() *catalog.Spell {
	s := b.s
	return &s
}

// FeatureBuilder builds class features with valid defaults
type FeatureBuilder struct {
	f catalog.Feature
}

// NewFeature starts a level 1 Fighter feature whose names default to its id
func NewFeature(id string) *FeatureBuilder {
	return &FeatureBuilder{f: catalog.Feature{
		ID:     id,
		Name:   catalog.LangString{PT: id, EN: id},
		Class:  "Fighter",
		Level:  1,
		Text:   catalog.LangString{PT: id, EN: id},
		Tags:   []string{},
		Source: catalog.Source{Name: "SRD 5.1"},
	}}
}

func (b *FeatureBuilder) Named(pt, en string) *FeatureBuilder {
	b.f.Name = catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *FeatureBuilder) Class(class string) *FeatureBuilder {
	b.f.Class = class
	return b
}

func (b *FeatureBuilder) Subclass(sub string) *FeatureBuilder {
	b.f.Subclass = sub
	return b
}

func (b *FeatureBuilder) Level(n int) *FeatureBuilder {
	b.f.Level = n
	return b
}

func (b *FeatureBuilder) Action(pt, en string) *FeatureBuilder {
	b.f.Action = &catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *FeatureBuilder) Uses(uses string) *FeatureBuilder {
	b.f.Uses = uses
	return b
}

func (b *FeatureBuilder) Text(pt, en string) *FeatureBuilder {
	b.f.Text = catalog.LangString{PT: pt, EN: en}
	return b
}

func (b *FeatureBuilder) Tags(tags ...string) *FeatureBuilder {
	b.f.Tags = tags
	return b
}

func (b *FeatureBuilder) Build() *catalog.Feature {
	f := b.f
	if b.f.Action != nil {
		a := *b.f.Action
		f.Action = &a
	}
	return &f
}

// SampleSpells returns a small fixed spell list covering every facet the
// engine filters on
func SampleSpells() []*catalog.Spell {
	return []*catalog.Spell{
		NewSpell("fire-bolt").Named("Raio de Fogo", "Fire Bolt").Level(0).
			Classes("Sorcerer", "Wizard").Casting("1 ação", "1 action").
			Range("36 metros", "120 feet").Duration("Instantânea", "Instantaneous").
			Text("Você arremessa um cisco de fogo. O alvo sofre 1d10 de dano de fogo.",
				"You hurl a mote of fire. The target takes 1d10 fire damage.").Build(),
		NewSpell("fireball").Named("Bola de Fogo", "Fireball").Level(3).
			Classes("Sorcerer", "Wizard").Casting("1 ação", "1 action").
			Range("45 metros", "150 feet").Duration("Instantânea", "Instantaneous").
			Text("Uma explosão de chamas. Cada criatura sofre 8d6 de dano de fogo.",
				"A bright streak blossoms into an explosion of flame. Each creature takes 8d6 fire damage.").Build(),
		NewSpell("cure-wounds").Named("Curar Ferimentos", "Cure Wounds").Level(1).
			School("Evocação", "Evocation").Classes("Cleric", "Druid", "Bard").
			Casting("1 ação", "1 action").Range("Toque", "Touch").Duration("Instantânea", "Instantaneous").
			Text("Uma criatura que você tocar recupera pontos de vida iguais a 1d8.",
				"A creature you touch regains a number of hit points equal to 1d8.").Build(),
		NewSpell("healing-word").Named("Palavra Curativa", "Healing Word").Level(1).
			Classes("Cleric", "Bard").Casting("1 ação bônus", "1 bonus action").
			Range("18 metros", "60 feet").Duration("Instantânea", "Instantaneous").
			Text("Uma criatura à sua escolha recupera pontos de vida iguais a 1d4.",
				"A creature of your choice regains hit points equal to 1d4.").Build(),
		NewSpell("bless").Named("Bênção", "Bless").Level(1).
			School("Encantamento", "Enchantment").Classes("Cleric", "Paladin").
			Casting("1 ação", "1 action").Range("9 metros", "30 feet").Duration("1 minuto", "1 minute").
			Concentration().
			Text("Sempre que um alvo fizer uma jogada de ataque, adiciona 1d4.",
				"Whenever a target makes an attack roll, it gains a +1 bonus to the roll and adds 1d4.").Build(),
		NewSpell("detect-magic").Named("Detectar Magia", "Detect Magic").Level(1).
			School("Adivinhação", "Divination").Classes("Cleric", "Wizard", "Bard").
			Casting("1 ação", "1 action").Range("Pessoal", "Self").Duration("10 minutos", "10 minutes").
			Ritual().Concentration().
			Text("Você sente a presença de magia a até 9 metros.",
				"You sense the presence of magic within 30 feet of you and can detect it.").Build(),
		NewSpell("alarm").Named("Alarme", "Alarm").Level(1).
			School("Abjuração", "Abjuration").Classes("Wizard").
			Casting("1 minuto", "1 minute").Range("9 metros", "30 feet").Duration("8 horas", "8 hours").
			Ritual().
			Text("Você coloca um alarme contra intrusos.", "You set an alarm against unwanted intrusion.").Build(),
		NewSpell("shield").Named("Escudo Arcano", "Shield").Level(1).
			School("Abjuração", "Abjuration").Classes("Sorcerer", "Wizard").
			Casting("1 reação", "1 reaction").Range("Pessoal", "Self").Duration("1 rodada", "1 round").
			Text("Você recebe +5 de bônus na CA.", "You gain a +5 bonus to AC until the start of your next turn.").Build(),
		NewSpell("misty-step").Named("Passo Nebuloso", "Misty Step").Level(2).
			School("Conjuração", "Conjuration").Classes("Sorcerer", "Wizard", "Warlock").
			Casting("1 ação bônus", "1 bonus action").Range("Pessoal", "Self").Duration("Instantânea", "Instantaneous").
			Text("Você se teletransporta até 9 metros.", "You teleport up to 30 feet to an unoccupied space.").Build(),
		NewSpell("knock").Named("Arrombar", "Knock").Level(2).
			School("Transmutação", "Transmutation").Classes("Bard", "Sorcerer", "Wizard").
			Casting("1 ação", "1 action").Range("18 metros", "60 feet").Duration("Instantânea", "Instantaneous").
			Text("Escolha um objeto trancado. Ele se destranca.", "Choose an object that is locked. It becomes unlocked and you can open it.").Build(),
	}
}

// SampleFeatures returns a small fixed class feature list
func SampleFeatures() []*catalog.Feature {
	return []*catalog.Feature{
		NewFeature("second-wind").Named("Retomar o Fôlego", "Second Wind").Class("Fighter").Level(1).
			Action("Ação bônus", "Bonus action").Uses("1/short rest").
			Text("Você recupera pontos de vida iguais a 1d10 + seu nível.",
				"You regain hit points equal to 1d10 + your fighter level.").Build(),
		NewFeature("action-surge").Named("Surto de Ação", "Action Surge").Class("Fighter").Level(2).
			Uses("1/short rest").
			Text("Você pode realizar uma ação adicional.", "You can take one additional action.").Build(),
		NewFeature("rage").Named("Fúria", "Rage").Class("Barbarian").Level(1).
			Action("Ação bônus", "Bonus action").Uses("2/long rest").
			Text("Você tem vantagem em testes de Força.", "You have advantage on Strength checks.").Build(),
		NewFeature("channel-divinity").Named("Canalizar Divindade", "Channel Divinity").Class("Cleric").Level(2).
			Action("Ação", "Action").Uses("1/short rest").Tags("clérigo").
			Text("Você canaliza energia divina.", "You channel divine energy.").Build(),
	}
}

// SampleRecords returns SampleSpells followed by SampleFeatures as records
func SampleRecords() []catalog.Record {
	out := catalog.Records(SampleSpells())
	return append(out, catalog.Records(SampleFeatures())...)
}
