package catalog

// Components lists the verbal/somatic/material requirements of a spell.
type Components struct {
	Verbal   bool   `json:"verbal"`
	Somatic  bool   `json:"somatic"`
	Material string `json:"material,omitempty"`
}

// Spell is a leveled (0-9) spell entry.
type Spell struct {
	ID            string     `json:"id"`
	Name          LangString `json:"name"`
	Level         int        `json:"level"`
	SchoolName    LangString `json:"school"`
	ClassNames    []string   `json:"classes"`
	CastingTime   LangString `json:"castingTime"`
	Range         LangString `json:"range"`
	Duration      LangString `json:"duration"`
	Concentration bool       `json:"concentration"`
	Ritual        bool       `json:"ritual"`
	Components    Components `json:"components"`
	Text          LangString `json:"text"`
	Tags          []string   `json:"tags"`
	Source        Source     `json:"source"`
}

func (s *Spell) Kind() Kind              { return KindSpell }
func (s *Spell) RecordID() string        { return s.ID }
func (s *Spell) Key() string             { return Key(KindSpell, s.ID) }
func (s *Spell) DisplayName() LangString { return s.Name }
func (s *Spell) RecordLevel() int        { return s.Level }
func (s *Spell) Classes() []string       { return s.ClassNames }
func (s *Spell) School() LangString      { return s.SchoolName }
func (s *Spell) Body() LangString        { return s.Text }
func (s *Spell) RawTags() []string       { return s.Tags }
