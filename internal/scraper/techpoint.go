package scraper

import (
	"github.com/lemina/intel-cli/internal/config"
	"github.com/lemina/intel-cli/internal/fetcher"
)

const techPointURL = "https://techpoint.africa/category/startups/"

// NewTechPoint builds the Techpoint Africa startups-category unit.
func NewTechPoint(cfg config.ScraperConfig, f fetcher.Fetcher) Scraper {
	return newListing("techpoint", techPointURL, 2, cfg, f)
}
