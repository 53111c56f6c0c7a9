package index

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/semantic"
	"github.com/standardbeagle/grimoire/internal/tags"
	"github.com/standardbeagle/grimoire/internal/textnorm"
)

// Document is the indexed form of one record. Spells and features share the
// shape; Kind discriminates, and Key ("kind:id") is the only identity the
// index hands back.
type Document struct {
	Key      string
	Kind     catalog.Kind
	ID       string
	NamePT   string
	NameEN   string
	BodyPT   string
	BodyEN   string
	Classes  []string
	Level    int
	Tags     []tags.TagKey
	Keywords []string
}

var markup = regexp.MustCompile("[*_`#>~|]+")

// stripMarkup removes the light inline markup allowed in record bodies.
func stripMarkup(s string) string {
	return markup.ReplaceAllString(s, " ")
}

// NewDocument builds the document for r. Text fields are normalized so that
// accent-free queries match accented names.
func NewDocument(r catalog.Record, assigned []tags.TagKey, stemmer *semantic.Stemmer) Document {
	name := r.DisplayName()
	body := r.Body()

	classes := make([]string, 0, len(r.Classes()))
	for _, c := range r.Classes() {
		if n := textnorm.Normalize(c); n != "" {
			classes = append(classes, n)
		}
	}

	return Document{
		Key:      r.Key(),
		Kind:     r.Kind(),
		ID:       r.RecordID(),
		NamePT:   textnorm.Normalize(name.PT),
		NameEN:   textnorm.Normalize(name.EN),
		BodyPT:   textnorm.Normalize(stripMarkup(body.PT)),
		BodyEN:   textnorm.Normalize(stripMarkup(body.EN)),
		Classes:  classes,
		Level:    r.RecordLevel(),
		Tags:     assigned,
		Keywords: keywords(name.EN, assigned, stemmer),
	}
}

// keywords synthesizes the extra search vocabulary of a record: the labels of
// its tags in both languages plus porter2 stems of its English name.
func keywords(nameEN string, assigned []tags.TagKey, stemmer *semantic.Stemmer) []string {
	var words []string
	for _, k := range assigned {
		if l, ok := tags.LabelOf(k); ok {
			words = append(words, textnorm.Tokens(l.PT)...)
			words = append(words, textnorm.Tokens(l.EN)...)
		}
	}
	if stemmer != nil {
		words = append(words, stemmer.StemAll(textnorm.Tokens(nameEN))...)
	}

	seen := make(map[string]bool, len(words))
	out := words[:0]
	for _, w := range words {
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// ToDocuments converts a record set, looking tags up in the assignment.
func ToDocuments(records []catalog.Record, assignment tags.Assignment, stemmer *semantic.Stemmer) []Document {
	docs := make([]Document, 0, len(records))
	for _, r := range records {
		docs = append(docs, NewDocument(r, assignment[r.Key()], stemmer))
	}
	return docs
}

// fields renders the document for bleve. Only mapped fields are indexed.
func (d Document) fields() map[string]interface{} {
	tagStrings := make([]string, len(d.Tags))
	for i, t := range d.Tags {
		tagStrings[i] = string(t)
	}
	return map[string]interface{}{
		fieldKind:     string(d.Kind),
		fieldLevel:    float64(d.Level),
		fieldNamePT:   d.NamePT,
		fieldNameEN:   d.NameEN,
		fieldBodyPT:   d.BodyPT,
		fieldBodyEN:   d.BodyEN,
		fieldClasses:  strings.Join(d.Classes, " "),
		fieldKeywords: strings.Join(d.Keywords, " "),
		fieldTags:     tagStrings,
	}
}
