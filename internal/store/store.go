// Package store persists runs, checkpoints and triangulated entities.
// Two drivers exist: SQLite for local single-user runs and Postgres for
// shared deployments. Both implement Store with identical semantics.
package store

import (
	"context"

	"github.com/lemina/intel-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// CompanyFilter specifies criteria for listing companies.
type CompanyFilter struct {
	Sector     string                   `json:"sector,omitempty"`
	Status     model.VerificationStatus `json:"status,omitempty"`
	MinQuality int                      `json:"min_quality,omitempty"`
	Search     string                   `json:"search,omitempty"`
	Limit      int                      `json:"limit,omitempty"`
	Offset     int                      `json:"offset,omitempty"`
}

// Store defines the persistence interface for the collection pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	FinishRun(ctx context.Context, runID string, status model.RunStatus, summary *model.RunSummary) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Checkpoints. One checkpoint per run; SaveCheckpoint overwrites.
	SaveCheckpoint(ctx context.Context, cp *model.Checkpoint) error
	LatestCheckpoint(ctx context.Context) (*model.Checkpoint, error)
	DeleteCheckpoint(ctx context.Context, runID string) error

	// Companies. UpsertCompany matches on entity key, fills c.ID and
	// reports whether a new row was created.
	UpsertCompany(ctx context.Context, c *model.Company) (inserted bool, err error)
	GetCompany(ctx context.Context, entityKey string) (*model.Company, error)
	ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error)

	// Sub-records. Batch-shaped so the Postgres driver can use COPY; the
	// SQLite driver loops inside a transaction.
	InsertFundingRounds(ctx context.Context, frs []model.FundingRound) error
	InsertUpdates(ctx context.Context, us []model.CompanyUpdate) error
	InsertMetrics(ctx context.Context, ms []model.Metric) error
	UpsertRegulatory(ctx context.Context, ris []model.RegulatoryInfo) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
