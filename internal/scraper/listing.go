package scraper

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lemina/intel-cli/internal/config"
	"github.com/lemina/intel-cli/internal/fetcher"
	"github.com/lemina/intel-cli/internal/model"
)

const defaultMaxArticles = 30

// listingScraper turns a news category page into raw company records. Both
// press sources share the layout, so they share the implementation and
// differ only in name, URL and priority.
type listingScraper struct {
	name     string
	url      string
	priority int
	maxItems int
	fetch    fetcher.Fetcher
}

func newListing(name, url string, defaultPriority int, cfg config.ScraperConfig, f fetcher.Fetcher) *listingScraper {
	priority := defaultPriority
	if cfg.Priority > 0 {
		priority = cfg.Priority
	}
	maxItems := defaultMaxArticles
	if cfg.MaxPages > 0 {
		maxItems = cfg.MaxPages
	}
	return &listingScraper{
		name:     name,
		url:      url,
		priority: priority,
		maxItems: maxItems,
		fetch:    f,
	}
}

func (s *listingScraper) Name() string  { return s.name }
func (s *listingScraper) Priority() int { return s.priority }

// Scrape fetches the category page and extracts one record per article whose
// title yields a plausible company name. Duplicate names within the page are
// kept once; cross-source duplicates are the triangulation engine's job.
func (s *listingScraper) Scrape(ctx context.Context, limit int) ([]model.RawRecord, error) {
	body, err := s.fetch.Get(ctx, s.url)
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: %s fetch listing", s.name)
	}

	articles, err := parseListing(body)
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: %s parse listing", s.name)
	}
	if len(articles) > s.maxItems {
		articles = articles[:s.maxItems]
	}

	seen := make(map[string]bool)
	var records []model.RawRecord
	for _, a := range articles {
		if limit > 0 && len(records) >= limit {
			break
		}

		name := cleanCompanyName(a.Title)
		if len(name) < 3 || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		desc := truncate(a.Excerpt, 200)
		if desc == "" {
			desc = name + " - Nigerian startup"
		}

		records = append(records, model.RawRecord{
			"name":              name,
			"sector":            classifySector(a.Title + " " + a.Excerpt),
			"short_description": desc,
			"source":            s.name,
			"source_url":        a.Link,
		})
	}

	zap.L().Info("scraper: listing scraped",
		zap.String("source", s.name),
		zap.Int("articles", len(articles)),
		zap.Int("records", len(records)),
	)

	return records, nil
}
