package catalog

// Feature is a class feature gained at a class level (1-20).
type Feature struct {
	ID       string      `json:"id"`
	Name     LangString  `json:"name"`
	Class    string      `json:"class"`
	Subclass string      `json:"subclass,omitempty"`
	Level    int         `json:"level"`
	Action   *LangString `json:"action,omitempty"`
	Uses     string      `json:"uses,omitempty"`
	Text     LangString  `json:"text"`
	Tags     []string    `json:"tags"`
	Source   Source      `json:"source"`
}

func (f *Feature) Kind() Kind              { return KindFeature }
func (f *Feature) RecordID() string        { return f.ID }
func (f *Feature) Key() string             { return Key(KindFeature, f.ID) }
func (f *Feature) DisplayName() LangString { return f.Name }
func (f *Feature) RecordLevel() int        { return f.Level }
func (f *Feature) School() LangString      { return LangString{} }
func (f *Feature) Body() LangString        { return f.Text }
func (f *Feature) RawTags() []string       { return f.Tags }

// Classes returns the single owning class as a list so facet code can treat
// both variants alike.
func (f *Feature) Classes() []string {
	if f.Class == "" {
		return nil
	}
	return []string{f.Class}
}

// ActionText returns the action timing, or an empty pair when the feature is
// passive.
func (f *Feature) ActionText() LangString {
	if f.Action == nil {
		return LangString{}
	}
	return *f.Action
}
