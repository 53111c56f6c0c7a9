package dataset

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

const idPattern = `^[a-z0-9-]+$`

func ptr[T any](v T) *T { return &v }

func langString() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"pt": {Type: "string", MinLength: ptr(1)},
			"en": {Type: "string", MinLength: ptr(1)},
		},
		Required: []string{"pt", "en"},
	}
}

func sourceInfo() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":    {Type: "string"},
			"license": {Type: "string"},
			"page":    {Type: "integer", Minimum: ptr(1.0)},
		},
		Required: []string{"name"},
	}
}

func stringList() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}}
}

// SpellSchema describes one entry of a spells file.
func SpellSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":            {Type: "string", Pattern: idPattern},
			"name":          langString(),
			"level":         {Type: "integer", Minimum: ptr(0.0), Maximum: ptr(9.0)},
			"school":        langString(),
			"classes":       stringList(),
			"castingTime":   langString(),
			"range":         langString(),
			"duration":      langString(),
			"concentration": {Type: "boolean"},
			"ritual":        {Type: "boolean"},
			"components": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"verbal":   {Type: "boolean"},
					"somatic":  {Type: "boolean"},
					"material": {Type: "string", MinLength: ptr(1)},
				},
			},
			"text":   langString(),
			"tags":   stringList(),
			"source": sourceInfo(),
		},
		Required: []string{
			"id", "name", "level", "school", "classes", "castingTime",
			"range", "duration", "components", "text", "source",
		},
	}
}

// FeatureSchema describes one entry of a features file.
func FeatureSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":       {Type: "string", Pattern: idPattern},
			"name":     langString(),
			"class":    {Type: "string"},
			"subclass": {Type: "string"},
			"level":    {Type: "integer", Minimum: ptr(1.0), Maximum: ptr(20.0)},
			"action":   langString(),
			"uses":     {Type: "string"},
			"text":     langString(),
			"tags":     stringList(),
			"source":   sourceInfo(),
		},
		Required: []string{"id", "name", "class", "level", "text", "source"},
	}
}

var (
	resolveOnce sync.Once
	resolved    map[string]*jsonschema.Resolved
	resolveErr  error
)

func schemaFor(kind string) (*jsonschema.Resolved, error) {
	resolveOnce.Do(func() {
		resolved = make(map[string]*jsonschema.Resolved, 2)
		for name, s := range map[string]*jsonschema.Schema{
			kindSpells:   SpellSchema(),
			kindFeatures: FeatureSchema(),
		} {
			r, err := s.Resolve(nil)
			if err != nil {
				resolveErr = fmt.Errorf("resolve %s schema: %w", name, err)
				return
			}
			resolved[name] = r
		}
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	return resolved[kind], nil
}
