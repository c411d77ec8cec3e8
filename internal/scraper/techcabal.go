package scraper

import (
	"github.com/lemina/intel-cli/internal/config"
	"github.com/lemina/intel-cli/internal/fetcher"
)

const techCabalURL = "https://techcabal.com/category/startups/"

// NewTechCabal builds the TechCabal startups-category unit. It is the most
// reliable press source and runs first by default.
func NewTechCabal(cfg config.ScraperConfig, f fetcher.Fetcher) Scraper {
	return newListing("techcabal", techCabalURL, 1, cfg, f)
}
