package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemina/intel-cli/internal/config"
)

func TestSeedScrape(t *testing.T) {
	unit := NewSeed(config.ScraperConfig{}, nil)
	assert.Equal(t, "seed", unit.Name())
	assert.Equal(t, 3, unit.Priority())

	records, err := unit.Scrape(context.Background(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, rec := range records {
		assert.NotEmpty(t, rec.Str("name"))
		assert.NotEmpty(t, rec.Str("website"), rec.Str("name"))
		assert.NotEmpty(t, rec.Str("sector"), rec.Str("name"))
		assert.Equal(t, "seed", rec.Source())
	}
}

func TestSeedScrape_Licenses(t *testing.T) {
	records, err := NewSeed(config.ScraperConfig{}, nil).Scrape(context.Background(), 0)
	require.NoError(t, err)

	byName := make(map[string][]any)
	for _, rec := range records {
		licenses, _ := rec["regulatory"].([]any)
		byName[rec.Str("name")] = licenses
	}

	require.NotEmpty(t, byName["Kuda Bank"])
	lic, ok := byName["Kuda Bank"][0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cbn_microfinance", lic["license_type"])
	assert.Equal(t, "active", lic["status"])
	assert.Equal(t, true, lic["verified"])

	// Non-regulated entries carry no regulatory key at all.
	assert.Empty(t, byName["Jumia"])
}

func TestSeedScrape_Limit(t *testing.T) {
	records, err := NewSeed(config.ScraperConfig{}, nil).Scrape(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestSeedScrape_Deterministic(t *testing.T) {
	unit := NewSeed(config.ScraperConfig{}, nil)
	first, err := unit.Scrape(context.Background(), 0)
	require.NoError(t, err)
	second, err := unit.Scrape(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
