package model

import "time"

// RunStatus represents the current state of a scrape run.
type RunStatus string

const (
	RunStatusQueued        RunStatus = "queued"
	RunStatusFetching      RunStatus = "fetching"
	RunStatusTriangulating RunStatus = "triangulating"
	RunStatusPersisting    RunStatus = "persisting"
	RunStatusComplete      RunStatus = "complete"
	RunStatusFailed        RunStatus = "failed"
)

// Run represents a single end-to-end collection run.
type Run struct {
	ID        string      `json:"id"`
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SourceFailure records one fetch unit that could not produce output.
type SourceFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// RunSummary holds the best-effort outcome counts of a run. Categories 1-3
// of the failure taxonomy surface here rather than as errors.
type RunSummary struct {
	RecordsBySource map[string]int  `json:"records_by_source"`
	FailedSources   []SourceFailure `json:"failed_sources,omitempty"`
	SourcesResumed  []string        `json:"sources_resumed,omitempty"`

	RecordsDropped  int      `json:"records_dropped"`
	DropReasons     []string `json:"drop_reasons,omitempty"`
	UnlinkedRecords int      `json:"unlinked_records"`

	Companies       int     `json:"companies"`
	Verified        int     `json:"verified"`
	CrossReferenced int     `json:"cross_referenced"`
	SelfReported    int     `json:"self_reported"`
	FundingRounds   int     `json:"funding_rounds"`
	Updates         int     `json:"updates"`
	AverageQuality  float64 `json:"average_quality"`

	CompaniesInserted int `json:"companies_inserted"`
	CompaniesUpdated  int `json:"companies_updated"`
}

// SourceCheckpoint is the durable completion state for one fetch unit.
type SourceCheckpoint struct {
	Complete    bool        `json:"complete"`
	Error       string      `json:"error,omitempty"`
	Records     []RawRecord `json:"records,omitempty"`
	CompletedAt time.Time   `json:"completed_at"`
}

// Checkpoint snapshots per-source progress so an interrupted run can resume
// without re-fetching completed sources. It round-trips the accumulated
// {source -> records} aggregate exactly.
type Checkpoint struct {
	RunID     string                      `json:"run_id"`
	Sources   map[string]SourceCheckpoint `json:"sources"`
	CreatedAt time.Time                   `json:"created_at"`
}

// CompletedRecords returns the saved aggregate for completed sources only.
func (c *Checkpoint) CompletedRecords() map[string][]RawRecord {
	out := make(map[string][]RawRecord)
	for name, sc := range c.Sources {
		if sc.Complete {
			out[name] = sc.Records
		}
	}
	return out
}
