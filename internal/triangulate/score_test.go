package triangulate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lemina/intel-cli/internal/model"
)

func TestScore_BaseOnly(t *testing.T) {
	c := &model.Company{Name: "Bare"}
	assert.Equal(t, 50, Score(c))
}

func TestScore_FieldIncrements(t *testing.T) {
	c := &model.Company{Name: "Accrue", Website: "https://accrue.com"}
	c.AddSource("techcabal", "")
	assert.Equal(t, 50+10+5, Score(c))

	c.LongDescription = "a description"
	assert.Equal(t, 50+10+5+5, Score(c))

	c.FoundedYear = 2021
	c.TeamSize = 12
	c.Founders = []string{"Clinton Mbah"}
	assert.Equal(t, 50+10+5+5+5+5+5, Score(c))
}

func TestScore_SectorOtherDoesNotCount(t *testing.T) {
	c := &model.Company{Name: "X", Sector: "Other"}
	assert.Equal(t, 50, Score(c))

	c.Sector = "Fintech"
	assert.Equal(t, 55, Score(c))
}

func TestScore_ShortDescriptionNeedsSubstance(t *testing.T) {
	c := &model.Company{Name: "X", ShortDescription: "too short"}
	assert.Equal(t, 50, Score(c))

	c.ShortDescription = "a short description that is comfortably past the fifty character mark"
	assert.Equal(t, 55, Score(c))
}

func TestScore_ProvenanceBonuses(t *testing.T) {
	c := &model.Company{Name: "X"}
	c.AddSource("a", "")
	assert.Equal(t, 55, Score(c))

	c.AddSource("b", "")
	assert.Equal(t, 60, Score(c))

	c.AddSource("c", "")
	assert.Equal(t, 70, Score(c))

	c.AddSource("d", "")
	assert.Equal(t, 70, Score(c))
}

func TestScore_CappedAt100(t *testing.T) {
	c := &model.Company{
		Name:             "Full",
		Website:          "https://full.com",
		ShortDescription: "a short description that is comfortably past the fifty character mark",
		LongDescription:  "long",
		FoundedYear:      2015,
		TeamSize:         100,
		Founders:         []string{"A", "B"},
		Sector:           "Fintech",
	}
	c.AddSource("a", "")
	c.AddSource("b", "")
	c.AddSource("c", "")
	assert.Equal(t, 100, Score(c))
}

// Score never decreases when a merge adds a source or fills an empty field.
func TestScore_MonotoneUnderMerge(t *testing.T) {
	c := &model.Company{Name: "Accrue"}
	c.AddSource("techcabal", "")
	before := Score(c)

	other := &model.Company{Name: "Accrue Inc", Website: "https://accrue.com", FoundedYear: 2021}
	other.AddSource("techpoint", "")
	c.MergeFrom(other)

	after := Score(c)
	assert.GreaterOrEqual(t, after, before)
	assert.LessOrEqual(t, after, 100)
}
