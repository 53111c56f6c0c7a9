// Package catalog holds the record data model: spells and class features with
// bilingual (Portuguese/English) text.
//
// Records arrive here already validated (see internal/dataset); nothing in this
// package defends against missing required fields.
package catalog

import (
	"fmt"
	"strings"
)

// Kind discriminates the two record variants.
type Kind string

const (
	KindSpell   Kind = "spell"
	KindFeature Kind = "feature"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindSpell || k == KindFeature
}

// ParseKind accepts the singular or plural form ("spells" is what the CLI and
// the browse tabs say).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spell", "spells", "magia", "magias":
		return KindSpell, nil
	case "feature", "features":
		return KindFeature, nil
	default:
		return "", fmt.Errorf("unknown record kind %q (want spell or feature)", s)
	}
}

// Lang selects which half of a LangString to present.
type Lang string

const (
	LangPT Lang = "pt"
	LangEN Lang = "en"
)

// ParseLang defaults to Portuguese, the catalog's primary language.
func ParseLang(s string) Lang {
	if strings.EqualFold(strings.TrimSpace(s), string(LangEN)) {
		return LangEN
	}
	return LangPT
}

// LangString is a bilingual text pair.
type LangString struct {
	PT string `json:"pt"`
	EN string `json:"en"`
}

// In returns the text for lang.
func (ls LangString) In(lang Lang) string {
	if lang == LangEN {
		return ls.EN
	}
	return ls.PT
}

// IsZero reports whether both halves are empty.
func (ls LangString) IsZero() bool {
	return ls.PT == "" && ls.EN == ""
}

// Source is attribution metadata. The core never reads it.
type Source struct {
	Name    string `json:"name"`
	License string `json:"license,omitempty"`
	Page    int    `json:"page,omitempty"`
}

// Record is the read-only view shared by both variants.
type Record interface {
	Kind() Kind
	RecordID() string
	Key() string
	DisplayName() LangString
	RecordLevel() int
	Classes() []string
	School() LangString
	Body() LangString
	RawTags() []string
}

// Key builds the synthetic composite key "<kind>:<id>" used by the search
// index and the tag assignment map.
func Key(kind Kind, id string) string {
	return string(kind) + ":" + id
}

// ParseKey splits a composite key produced by Key.
func ParseKey(key string) (Kind, string, error) {
	sep := strings.IndexByte(key, ':')
	if sep < 0 || sep == len(key)-1 {
		return "", "", fmt.Errorf("malformed record key %q", key)
	}
	kind := Kind(key[:sep])
	if !kind.Valid() {
		return "", "", fmt.Errorf("malformed record key %q: unknown kind", key)
	}
	return kind, key[sep+1:], nil
}

// Records converts a slice of any record variant into the shared interface.
func Records[T Record](items []T) []Record {
	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
