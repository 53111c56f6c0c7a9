package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSpellPills(t *testing.T) {
	s := &Spell{
		Level:         3,
		CastingTime:   LangString{PT: "1 ação", EN: "1 action"},
		Range:         LangString{PT: "45 metros", EN: "150 feet"},
		Duration:      LangString{PT: " ", EN: "Instantaneous"},
		Concentration: true,
	}

	pt := BuildSpellPills(s, LangPT)
	assert.Equal(t, []Pill{
		{Label: "3º Círculo", Kind: PillLevel},
		{Label: "1 ação", Kind: PillCasting},
		{Label: "45 metros", Kind: PillRange},
		{Label: "Concentração", Kind: PillDefault},
	}, pt)

	en := BuildSpellPills(s, LangEN)
	assert.Len(t, en, 5)
	assert.Equal(t, "Level 3", en[0].Label)
	assert.Equal(t, Pill{Label: "Instantaneous", Kind: PillDuration}, en[3])
}

func TestBuildFeaturePills(t *testing.T) {
	f := &Feature{Level: 2, Uses: "1/short rest"}
	assert.Equal(t, []Pill{
		{Label: "Nível 2", Kind: PillLevel},
		{Label: "Usos: 1/short rest", Kind: PillDefault},
	}, BuildFeaturePills(f, LangPT))

	f.Action = &LangString{PT: "Ação Bônus", EN: "Bonus Action"}
	pills := BuildPills(f, LangEN)
	assert.Equal(t, Pill{Label: "Bonus Action", Kind: PillCasting}, pills[1])
}

func TestFormatLevels(t *testing.T) {
	assert.Equal(t, "Truque", FormatSpellLevel(0, LangPT))
	assert.Equal(t, "Cantrip", FormatSpellLevel(0, LangEN))
	assert.Equal(t, "Level 20", FormatFeatureLevel(20, LangEN))
}
