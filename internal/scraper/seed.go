package scraper

import (
	"context"
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/lemina/intel-cli/internal/config"
	"github.com/lemina/intel-cli/internal/fetcher"
	"github.com/lemina/intel-cli/internal/model"
)

//go:embed seed.yaml
var seedData []byte

// seedCompany is one curated entry in the embedded list.
type seedCompany struct {
	Name        string        `yaml:"name"`
	Sector      string        `yaml:"sector"`
	Website     string        `yaml:"website"`
	Description string        `yaml:"description"`
	Licenses    []seedLicense `yaml:"licenses"`
}

// seedLicense is a known regulator license held by a curated company.
type seedLicense struct {
	Type   string `yaml:"type"`
	Number string `yaml:"number"`
	Status string `yaml:"status"`
}

// SeedScraper emits the curated list of well-known companies embedded in the
// binary. It guarantees baseline coverage even when both press sources fail,
// and is the only source that carries websites, which anchor exact matching
// during triangulation.
type SeedScraper struct {
	priority int
}

// NewSeed builds the curated-list unit.
func NewSeed(cfg config.ScraperConfig, _ fetcher.Fetcher) Scraper {
	priority := 3
	if cfg.Priority > 0 {
		priority = cfg.Priority
	}
	return &SeedScraper{priority: priority}
}

func (s *SeedScraper) Name() string  { return "seed" }
func (s *SeedScraper) Priority() int { return s.priority }

// Scrape decodes the embedded list. No network involved.
func (s *SeedScraper) Scrape(_ context.Context, limit int) ([]model.RawRecord, error) {
	var companies []seedCompany
	if err := yaml.Unmarshal(seedData, &companies); err != nil {
		return nil, eris.Wrap(err, "scraper: decode seed list")
	}

	var records []model.RawRecord
	for _, c := range companies {
		if limit > 0 && len(records) >= limit {
			break
		}
		rec := model.RawRecord{
			"name":              c.Name,
			"sector":            c.Sector,
			"website":           c.Website,
			"short_description": c.Description,
			"source":            "seed",
		}
		if len(c.Licenses) > 0 {
			// Same shape the checkpoint's JSON round-trip produces.
			licenses := make([]any, 0, len(c.Licenses))
			for _, l := range c.Licenses {
				licenses = append(licenses, map[string]any{
					"license_type":   l.Type,
					"license_number": l.Number,
					"status":         l.Status,
					"verified":       true,
				})
			}
			rec["regulatory"] = licenses
		}
		records = append(records, rec)
	}
	return records, nil
}
