package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/lemina/intel-cli/internal/fetcher"
	"github.com/lemina/intel-cli/internal/scraper"
	"github.com/lemina/intel-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		path := cfg.Store.SQLitePath
		if path == "" {
			path = "lemina.db"
		}
		return store.NewSQLite(path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func newFetcher() *fetcher.HTTPFetcher {
	// Each unit's configured rate becomes the budget for the host it owns;
	// hosts nothing claims fall back to the default.
	hostLimits := make(map[string]rate.Limit)
	for name, sc := range cfg.Scrapers {
		host := scraper.Host(name)
		if host == "" || sc.RateLimit <= 0 {
			continue
		}
		hostLimits[host] = rate.Limit(sc.RateLimit)
	}

	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:     cfg.Fetch.UserAgent,
		Timeout:       time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries:    cfg.Fetch.MaxRetries,
		CacheTTL:      time.Duration(cfg.Fetch.CacheTTLMins) * time.Minute,
		RespectRobots: cfg.Fetch.RespectRobots,
		RateLimit:     1,
		HostLimits:    hostLimits,
	})
}

func newRegistry() *scraper.Registry {
	reg := scraper.NewRegistry()
	reg.Register("techcabal", scraper.NewTechCabal)
	reg.Register("techpoint", scraper.NewTechPoint)
	reg.Register("seed", scraper.NewSeed)
	return reg
}
