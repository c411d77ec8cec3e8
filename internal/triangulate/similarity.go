package triangulate

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// matchThreshold is the minimum name similarity for two records to be
// considered the same company. Strictly exceeded, never met.
const matchThreshold = 0.90

// similarity scores two normalized names in [0,1] using normalized edit
// distance over token-sorted strings, so word order does not penalize.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return strutil.Similarity(tokenSort(a), tokenSort(b), metrics.NewLevenshtein())
}
