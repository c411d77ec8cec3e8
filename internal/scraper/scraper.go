// Package scraper defines the fetch-unit interface and the registry that
// decides which units a run executes.
package scraper

import (
	"context"
	"sort"
	"sync"

	"github.com/lemina/intel-cli/internal/config"
	"github.com/lemina/intel-cli/internal/fetcher"
	"github.com/lemina/intel-cli/internal/model"
)

// Scraper is a source-specific producer of raw company records. Scrape must
// be safe to re-invoke: resumed runs call it again for sources that never
// completed. limit > 0 asks the unit to stop after that many records; the
// orchestrator still truncates, so it is a hint, not a contract.
type Scraper interface {
	Name() string
	Priority() int
	Scrape(ctx context.Context, limit int) ([]model.RawRecord, error)
}

// Constructor builds a unit from its config block and the shared fetcher.
type Constructor func(cfg config.ScraperConfig, f fetcher.Fetcher) Scraper

// Registry holds the available fetch units. Units self-describe (name,
// default priority), so adding a source means adding one Register call.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds a unit constructor under its source name.
func (r *Registry) Register(name string, fn Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[name] = fn
}

// Names returns all registered source names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enabled instantiates every unit that is enabled by configuration and, when
// only is non-empty, selected by it. Units without a config block run with
// their declared defaults. The result is ordered ascending by priority,
// ties broken by name for determinism.
func (r *Registry) Enabled(cfg *config.Config, f fetcher.Fetcher, only []string) []Scraper {
	selected := make(map[string]bool, len(only))
	for _, name := range only {
		selected[name] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var units []Scraper
	for name, build := range r.constructors {
		if len(only) > 0 && !selected[name] {
			continue
		}
		sc, ok := cfg.Scraper(name)
		if ok && !sc.Enabled {
			continue
		}
		units = append(units, build(sc, f))
	}

	sort.Slice(units, func(i, j int) bool {
		if units[i].Priority() != units[j].Priority() {
			return units[i].Priority() < units[j].Priority()
		}
		return units[i].Name() < units[j].Name()
	})
	return units
}

// sourceHosts maps each network-backed unit to the host its listing pages
// live on. Embedded units (seed) fetch nothing and have no entry.
var sourceHosts = map[string]string{
	"techcabal": "techcabal.com",
	"techpoint": "techpoint.africa",
}

// Host returns the host the named unit fetches from, or "" for units that
// never touch the network. Used to scope fetch budgets per host.
func Host(name string) string { return sourceHosts[name] }

// Priorities returns the effective priority of each unit in the slice,
// keyed by source name, for the triangulation engine's iteration order.
func Priorities(units []Scraper) map[string]int {
	out := make(map[string]int, len(units))
	for _, u := range units {
		out[u.Name()] = u.Priority()
	}
	return out
}
