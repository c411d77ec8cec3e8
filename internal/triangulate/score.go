package triangulate

import (
	"strings"

	"github.com/lemina/intel-cli/internal/model"
)

const (
	scoreBase = 50
	scoreCap  = 100
)

// Score computes the data quality score for a company from scratch. Called
// once per entity after all merges; never adjusted incrementally, so the
// score is a pure function of the entity's fields and provenance set.
func Score(c *model.Company) int {
	score := scoreBase

	if c.Website != "" {
		score += 10
	}
	if len(c.ShortDescription) > 50 {
		score += 5
	}
	if c.LongDescription != "" {
		score += 5
	}
	if c.FoundedYear != 0 {
		score += 5
	}
	if c.TeamSize != 0 {
		score += 5
	}
	if len(c.Founders) > 0 {
		score += 5
	}
	if c.Sector != "" && !strings.EqualFold(c.Sector, "other") {
		score += 5
	}

	switch n := len(c.Sources); {
	case n >= 3:
		score += 20
	case n == 2:
		score += 10
	case n == 1:
		score += 5
	}

	if score > scoreCap {
		score = scoreCap
	}
	return score
}
