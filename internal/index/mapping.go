package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

const (
	fieldKind     = "kind"
	fieldLevel    = "level"
	fieldNamePT   = "name_pt"
	fieldNameEN   = "name_en"
	fieldBodyPT   = "body_pt"
	fieldBodyEN   = "body_en"
	fieldClasses  = "classes"
	fieldKeywords = "keywords"
	fieldTags     = "tags"
)

// buildMapping creates the index mapping. Text arrives pre-normalized, so the
// standard analyzer only has to tokenize. Nothing is stored: documents are kept
// alongside the index and looked up by key.
func buildMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.Dynamic = false

	for _, name := range []string{fieldNamePT, fieldNameEN, fieldBodyPT, fieldBodyEN, fieldClasses, fieldKeywords} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = false
		fm.Index = true
		fm.IncludeTermVectors = false
		docMapping.AddFieldMappingsAt(name, fm)
	}

	kindField := bleve.NewTextFieldMapping()
	kindField.Analyzer = keyword.Name
	kindField.Store = false
	docMapping.AddFieldMappingsAt(fieldKind, kindField)

	tagField := bleve.NewKeywordFieldMapping()
	tagField.Store = false
	docMapping.AddFieldMappingsAt(fieldTags, tagField)

	levelField := bleve.NewNumericFieldMapping()
	levelField.Store = false
	docMapping.AddFieldMappingsAt(fieldLevel, levelField)

	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name
	return indexMapping
}
