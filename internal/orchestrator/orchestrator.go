// Package orchestrator runs the collection pipeline end to end: fetch units
// in a bounded worker pool, checkpoint after each unit, triangulate the
// aggregate and persist the result.
package orchestrator

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lemina/intel-cli/internal/config"
	"github.com/lemina/intel-cli/internal/fetcher"
	"github.com/lemina/intel-cli/internal/model"
	"github.com/lemina/intel-cli/internal/scraper"
	"github.com/lemina/intel-cli/internal/store"
	"github.com/lemina/intel-cli/internal/triangulate"
)

// Options control a single collection run.
type Options struct {
	// Sources restricts the run to the named units; empty means all enabled.
	Sources []string
	// Resume seeds the run from the latest checkpoint and re-fetches only
	// sources that never completed.
	Resume bool
	// DryRun triangulates but does not persist companies or sub-records.
	DryRun bool
	// Limit caps the records taken from each source; 0 means no cap.
	Limit int
}

// Orchestrator wires the fetch units, the triangulation engine and the store.
type Orchestrator struct {
	cfg      *config.Config
	store    store.Store
	registry *scraper.Registry
	fetch    fetcher.Fetcher
	tri      *triangulate.Triangulator
}

// New creates an Orchestrator with all dependencies.
func New(cfg *config.Config, st store.Store, reg *scraper.Registry, f fetcher.Fetcher) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		store:    st,
		registry: reg,
		fetch:    f,
		tri:      triangulate.New(),
	}
}

// unitResult is one fetch unit's outcome, delivered to the collector.
type unitResult struct {
	name    string
	records []model.RawRecord
	err     error
}

// Run executes a collection run and returns its summary. Source failures and
// data problems are absorbed into the summary; the returned error is reserved
// for contract violations (store failures, corrupt checkpoint, no units).
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*model.RunSummary, error) {
	units := o.registry.Enabled(o.cfg, o.fetch, opts.Sources)
	if len(units) == 0 {
		return nil, eris.New("orchestrator: no fetch units enabled")
	}
	priorities := scraper.Priorities(units)

	run, err := o.store.CreateRun(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "orchestrator: create run")
	}
	log := zap.L().With(zap.String("run_id", run.ID))

	summary := &model.RunSummary{RecordsBySource: make(map[string]int)}

	setStatus := func(status model.RunStatus) {
		if statusErr := o.store.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("orchestrator: failed to update status", zap.Error(statusErr))
		}
	}

	fail := func(cause error) (*model.RunSummary, error) {
		if finishErr := o.store.FinishRun(ctx, run.ID, model.RunStatusFailed, summary); finishErr != nil {
			log.Warn("orchestrator: failed to record run failure", zap.Error(finishErr))
		}
		return summary, cause
	}

	// The run's durable checkpoint. Seeded from the previous run on resume,
	// then extended as units complete.
	cp := &model.Checkpoint{
		RunID:     run.ID,
		Sources:   make(map[string]model.SourceCheckpoint),
		CreatedAt: time.Now().UTC(),
	}

	aggregate := make(map[string][]model.RawRecord)
	var resumedFrom string

	if opts.Resume {
		prev, err := o.store.LatestCheckpoint(ctx)
		if err != nil {
			return fail(eris.Wrap(err, "orchestrator: load checkpoint"))
		}
		if prev != nil {
			resumedFrom = prev.RunID
			for name, records := range prev.CompletedRecords() {
				aggregate[name] = records
				cp.Sources[name] = model.SourceCheckpoint{
					Complete:    true,
					Records:     records,
					CompletedAt: prev.Sources[name].CompletedAt,
				}
				summary.SourcesResumed = append(summary.SourcesResumed, name)
				summary.RecordsBySource[name] = len(records)
			}
			sort.Strings(summary.SourcesResumed)
			log.Info("orchestrator: resuming from checkpoint",
				zap.String("previous_run", prev.RunID),
				zap.Strings("sources", summary.SourcesResumed),
			)
		}
	}

	// Drop units whose source already completed in the resumed checkpoint.
	pending := units[:0:0]
	for _, u := range units {
		if sc, ok := cp.Sources[u.Name()]; ok && sc.Complete {
			continue
		}
		pending = append(pending, u)
	}

	setStatus(model.RunStatusFetching)

	// One collector goroutine owns the aggregate and the checkpoint writes;
	// workers only send results. Checkpoint saves stay serialized without a
	// mutex, and a save failure aborts the run.
	results := make(chan unitResult)
	collectDone := make(chan error, 1)
	go func() {
		for res := range results {
			sc := model.SourceCheckpoint{CompletedAt: time.Now().UTC()}
			if res.err != nil {
				sc.Error = res.err.Error()
				summary.FailedSources = append(summary.FailedSources, model.SourceFailure{
					Source: res.name,
					Error:  res.err.Error(),
				})
				log.Warn("orchestrator: source failed",
					zap.String("source", res.name),
					zap.Error(res.err),
				)
			} else {
				sc.Complete = true
				sc.Records = res.records
				aggregate[res.name] = res.records
				summary.RecordsBySource[res.name] = len(res.records)
			}
			cp.Sources[res.name] = sc

			if err := o.store.SaveCheckpoint(ctx, cp); err != nil {
				collectDone <- eris.Wrap(err, "orchestrator: save checkpoint")
				// Drain remaining results so workers do not block.
				for range results {
				}
				return
			}
		}
		collectDone <- nil
	}()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers())
	for _, u := range pending {
		g.Go(func() error {
			records, err := u.Scrape(gCtx, opts.Limit)
			if err == nil && opts.Limit > 0 && len(records) > opts.Limit {
				records = records[:opts.Limit]
			}
			results <- unitResult{name: u.Name(), records: records, err: err}
			// Unit failures stay in the summary; they never cancel siblings.
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	if err := <-collectDone; err != nil {
		return fail(err)
	}
	if err := ctx.Err(); err != nil {
		return fail(eris.Wrap(err, "orchestrator: fetch cancelled"))
	}

	sort.Slice(summary.FailedSources, func(i, j int) bool {
		return summary.FailedSources[i].Source < summary.FailedSources[j].Source
	})

	setStatus(model.RunStatusTriangulating)

	res, err := o.tri.Process(aggregate, priorities)
	if err != nil {
		return fail(eris.Wrap(err, "orchestrator: triangulate"))
	}
	summarize(summary, res)

	if !opts.DryRun {
		setStatus(model.RunStatusPersisting)
		if err := o.persist(ctx, res, summary); err != nil {
			return fail(err)
		}
	}

	if err := o.store.FinishRun(ctx, run.ID, model.RunStatusComplete, summary); err != nil {
		return summary, eris.Wrap(err, "orchestrator: finish run")
	}
	if err := o.store.DeleteCheckpoint(ctx, run.ID); err != nil {
		log.Warn("orchestrator: failed to delete checkpoint", zap.Error(err))
	}
	if resumedFrom != "" {
		if err := o.store.DeleteCheckpoint(ctx, resumedFrom); err != nil {
			log.Warn("orchestrator: failed to delete resumed checkpoint", zap.Error(err))
		}
	}

	log.Info("orchestrator: run complete",
		zap.Int("companies", summary.Companies),
		zap.Int("failed_sources", len(summary.FailedSources)),
		zap.Float64("average_quality", summary.AverageQuality),
	)

	return summary, nil
}

func (o *Orchestrator) workers() int {
	if o.cfg.Pipeline.Workers > 0 {
		return o.cfg.Pipeline.Workers
	}
	return 5
}

// summarize folds triangulation output into the run summary.
func summarize(summary *model.RunSummary, res *triangulate.Result) {
	summary.RecordsDropped = res.Dropped
	summary.DropReasons = res.DropReasons
	summary.UnlinkedRecords = res.Unlinked
	summary.Companies = len(res.Companies)
	summary.FundingRounds = len(res.FundingRounds)
	summary.Updates = len(res.Updates)

	var total int
	for _, c := range res.Companies {
		total += c.QualityScore
		switch c.VerificationStatus {
		case model.StatusVerified:
			summary.Verified++
		case model.StatusCrossReferenced:
			summary.CrossReferenced++
		case model.StatusSelfReported:
			summary.SelfReported++
		}
	}
	if len(res.Companies) > 0 {
		summary.AverageQuality = float64(total) / float64(len(res.Companies))
	}
}

// persist upserts companies in deterministic order, then bulk-inserts
// sub-records with company ids resolved through their entity keys.
func (o *Orchestrator) persist(ctx context.Context, res *triangulate.Result, summary *model.RunSummary) error {
	idByKey := make(map[string]int64, len(res.Companies))
	for _, c := range res.Companies {
		inserted, err := o.store.UpsertCompany(ctx, c)
		if err != nil {
			return eris.Wrapf(err, "orchestrator: persist company %s", c.EntityKey)
		}
		if inserted {
			summary.CompaniesInserted++
		} else {
			summary.CompaniesUpdated++
		}
		idByKey[c.EntityKey] = c.ID
	}

	for i := range res.FundingRounds {
		res.FundingRounds[i].CompanyID = idByKey[res.FundingRounds[i].CompanyKey]
	}
	for i := range res.Updates {
		res.Updates[i].CompanyID = idByKey[res.Updates[i].CompanyKey]
	}
	for i := range res.Metrics {
		res.Metrics[i].CompanyID = idByKey[res.Metrics[i].CompanyKey]
	}
	for i := range res.Regulatory {
		res.Regulatory[i].CompanyID = idByKey[res.Regulatory[i].CompanyKey]
	}

	if err := o.store.InsertFundingRounds(ctx, res.FundingRounds); err != nil {
		return eris.Wrap(err, "orchestrator: persist funding rounds")
	}
	if err := o.store.InsertUpdates(ctx, res.Updates); err != nil {
		return eris.Wrap(err, "orchestrator: persist updates")
	}
	if err := o.store.InsertMetrics(ctx, res.Metrics); err != nil {
		return eris.Wrap(err, "orchestrator: persist metrics")
	}
	if err := o.store.UpsertRegulatory(ctx, res.Regulatory); err != nil {
		return eris.Wrap(err, "orchestrator: persist regulatory info")
	}
	return nil
}
