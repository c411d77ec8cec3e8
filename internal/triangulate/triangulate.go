// Package triangulate cross-references raw records from independent sources
// into deduplicated, confidence-scored company entities.
package triangulate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/lemina/intel-cli/internal/model"
)

// defaultPriority orders sources that never declared one after everything else.
const defaultPriority = 99

// headlinePattern catches listicle titles ("7 African Startups Powering
// Sales") that slipped past a unit's own name cleaning.
var headlinePattern = regexp.MustCompile(`^\d+\s`)

// Result is the full output of one triangulation pass.
type Result struct {
	Companies []*model.Company

	// Sub-records in deterministic extraction order. Entries whose weak name
	// reference matched no entity keep an empty CompanyKey and are counted in
	// Unlinked rather than dropped.
	FundingRounds []model.FundingRound
	Updates       []model.CompanyUpdate
	Metrics       []model.Metric
	Regulatory    []model.RegulatoryInfo

	Dropped     int
	DropReasons []string
	Unlinked    int
}

// Triangulator deduplicates and merges company records across sources.
type Triangulator struct{}

// New creates a Triangulator.
func New() *Triangulator {
	return &Triangulator{}
}

// entry pairs a canonical entity with its cached match keys.
type entry struct {
	company  *model.Company
	normName string
	host     string
}

// Process converts, deduplicates, merges and scores the aggregated records.
// Iteration is deterministic: sources ascending by (priority, name), records
// in arrival order within each source, so the output is identical regardless
// of fetch completion order. Data problems are absorbed into the Result;
// Process only fails on violated contracts.
func (t *Triangulator) Process(bySource map[string][]model.RawRecord, priorities map[string]int) (*Result, error) {
	res := &Result{}

	order := sourceOrder(bySource, priorities)

	var entries []*entry
	hostIndex := make(map[string]*entry)

	total := 0
	for _, source := range order {
		for _, rec := range bySource[source] {
			total++
			c, reason := t.convert(source, rec)
			if c == nil {
				res.Dropped++
				res.DropReasons = append(res.DropReasons, reason)
				zap.L().Debug("triangulate: record dropped",
					zap.String("source", source),
					zap.String("reason", reason),
				)
				continue
			}
			t.fold(c, &entries, hostIndex)
		}
	}

	for _, e := range entries {
		e.company.QualityScore = Score(e.company)
		res.Companies = append(res.Companies, e.company)
	}

	t.extractSubRecords(order, bySource, res)
	t.link(entries, res)

	zap.L().Info("triangulate: complete",
		zap.Int("records_in", total),
		zap.Int("companies", len(res.Companies)),
		zap.Int("dropped", res.Dropped),
		zap.Int("unlinked", res.Unlinked),
	)

	return res, nil
}

// sourceOrder sorts source names ascending by (priority, name).
func sourceOrder(bySource map[string][]model.RawRecord, priorities map[string]int) []string {
	order := make([]string, 0, len(bySource))
	for name := range bySource {
		order = append(order, name)
	}
	sort.Slice(order, func(i, j int) bool {
		pi, pj := priorityOf(priorities, order[i]), priorityOf(priorities, order[j])
		if pi != pj {
			return pi < pj
		}
		return order[i] < order[j]
	})
	return order
}

func priorityOf(priorities map[string]int, name string) int {
	if p, ok := priorities[name]; ok {
		return p
	}
	return defaultPriority
}

// convert turns a raw record into an unmerged Company, or returns nil with
// a drop reason when the record fails minimum-field validation.
func (t *Triangulator) convert(source string, rec model.RawRecord) (*model.Company, string) {
	name := strings.TrimSpace(rec.Str("name"))
	if name == "" {
		return nil, "missing name"
	}
	if headlinePattern.MatchString(name) {
		return nil, fmt.Sprintf("headline, not a company: %q", name)
	}
	if NormalizeName(name) == "" {
		return nil, fmt.Sprintf("name normalizes to nothing: %q", name)
	}

	c := &model.Company{
		Name:             name,
		Website:          rec.Str("website"),
		Sector:           rec.Str("sector"),
		SubSector:        rec.Str("sub_sector"),
		BusinessModel:    rec.Str("business_model"),
		ShortDescription: rec.Str("short_description"),
		LongDescription:  rec.Str("long_description"),
		FoundedYear:      rec.Int("founded_year"),
		TeamSize:         rec.Int("team_size"),
		Founders:         rec.StrList("founders"),
		Headquarters:     rec.Str("headquarters"),
		LinkedInURL:      rec.Str("linkedin_url"),
		TwitterURL:       rec.Str("twitter_url"),
		CrunchbaseURL:    rec.Str("crunchbase_url"),
	}

	src := rec.Source()
	if src == "" {
		src = source
	}
	c.AddSource(src, rec.SourceURL())

	return c, ""
}

// fold merges the record-shaped company into an existing entity, or creates
// a new one. Website host matches exactly; otherwise the best fuzzy name
// match above the threshold wins, with ties resolving to the earliest entity.
func (t *Triangulator) fold(c *model.Company, entries *[]*entry, hostIndex map[string]*entry) {
	host := NormalizeHost(c.Website)
	normName := NormalizeName(c.Name)

	if host != "" {
		if e, ok := hostIndex[host]; ok {
			e.company.MergeFrom(c)
			return
		}
	}

	if e := bestNameMatch(*entries, normName); e != nil {
		e.company.MergeFrom(c)
		if e.host == "" && host != "" {
			// Entity gains a website through the merge; index it for
			// exact matching of later records.
			e.host = host
			hostIndex[host] = e
		}
		return
	}

	key := host
	if key == "" {
		key = normName
	}
	c.EntityKey = key

	e := &entry{company: c, normName: normName, host: host}
	*entries = append(*entries, e)
	if host != "" {
		hostIndex[host] = e
	}
}

// bestNameMatch scans entities in creation order and returns the one with
// the highest similarity strictly above the threshold. The strict > on both
// comparisons keeps the first-created entity on ties.
func bestNameMatch(entries []*entry, normName string) *entry {
	var best *entry
	bestScore := matchThreshold
	for _, e := range entries {
		if s := similarity(normName, e.normName); s > bestScore {
			best = e
			bestScore = s
		}
	}
	return best
}
