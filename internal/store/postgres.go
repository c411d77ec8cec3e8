package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/lemina/intel-cli/internal/db"
	"github.com/lemina/intel-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_run":        `INSERT INTO runs (id, status, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
	"update_run_status": `UPDATE runs SET status = $1, updated_at = $2 WHERE id = $3`,
	"finish_run":        `UPDATE runs SET status = $1, summary = $2, updated_at = $3 WHERE id = $4`,
	"get_run":           `SELECT id, status, summary, created_at, updated_at FROM runs WHERE id = $1`,
	"save_checkpoint": `INSERT INTO checkpoints (run_id, data, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (run_id) DO UPDATE SET data = EXCLUDED.data, created_at = EXCLUDED.created_at`,
	"get_company": companySelectPG + ` WHERE entity_key = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	status     TEXT NOT NULL DEFAULT 'queued',
	summary    JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS checkpoints (
	run_id     TEXT PRIMARY KEY REFERENCES runs(id),
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS companies (
	id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	entity_key          TEXT NOT NULL UNIQUE,
	name                TEXT NOT NULL,
	website             TEXT NOT NULL DEFAULT '',
	sector              TEXT NOT NULL DEFAULT '',
	sub_sector          TEXT NOT NULL DEFAULT '',
	business_model      TEXT NOT NULL DEFAULT '',
	short_description   TEXT NOT NULL DEFAULT '',
	long_description    TEXT NOT NULL DEFAULT '',
	founded_year        INTEGER NOT NULL DEFAULT 0,
	team_size           INTEGER NOT NULL DEFAULT 0,
	founders            TEXT[] NOT NULL DEFAULT '{}',
	headquarters        TEXT NOT NULL DEFAULT '',
	linkedin_url        TEXT NOT NULL DEFAULT '',
	twitter_url         TEXT NOT NULL DEFAULT '',
	crunchbase_url      TEXT NOT NULL DEFAULT '',
	sources             TEXT[] NOT NULL DEFAULT '{}',
	source_urls         JSONB NOT NULL DEFAULT '{}',
	verification_status TEXT NOT NULL DEFAULT 'unverified',
	quality_score       INTEGER NOT NULL DEFAULT 0,
	cac_verified        BOOLEAN NOT NULL DEFAULT false,
	cbn_licensed        BOOLEAN NOT NULL DEFAULT false,
	sec_registered      BOOLEAN NOT NULL DEFAULT false,
	naicom_licensed     BOOLEAN NOT NULL DEFAULT false,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS funding_rounds (
	id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	company_id   BIGINT REFERENCES companies(id),
	company_key  TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL,
	round_type   TEXT NOT NULL,
	round_name   TEXT NOT NULL DEFAULT '',
	amount       DOUBLE PRECISION NOT NULL DEFAULT 0,
	currency     TEXT NOT NULL DEFAULT 'usd',
	amount_usd   DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_disclosed BOOLEAN NOT NULL DEFAULT true,
	announced_date TIMESTAMPTZ,
	lead_investors TEXT[] NOT NULL DEFAULT '{}',
	participating_investors TEXT[] NOT NULL DEFAULT '{}',
	source       TEXT NOT NULL,
	source_url   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS company_updates (
	id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	company_id   BIGINT REFERENCES companies(id),
	company_key  TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL,
	update_type  TEXT NOT NULL,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	source_name  TEXT NOT NULL,
	source_url   TEXT NOT NULL DEFAULT '',
	update_date  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS metrics (
	id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	company_id   BIGINT REFERENCES companies(id),
	company_key  TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL,
	metric_type  TEXT NOT NULL,
	value        DOUBLE PRECISION NOT NULL,
	currency     TEXT NOT NULL DEFAULT '',
	unit         TEXT NOT NULL DEFAULT '',
	period_type  TEXT NOT NULL DEFAULT '',
	period_date  TIMESTAMPTZ,
	confidence_level TEXT NOT NULL DEFAULT 'medium',
	source       TEXT NOT NULL,
	source_url   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS regulatory_info (
	id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	company_id     BIGINT REFERENCES companies(id),
	company_key    TEXT NOT NULL DEFAULT '',
	company_name   TEXT NOT NULL,
	license_type   TEXT NOT NULL,
	license_number TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	issue_date     TIMESTAMPTZ,
	verified       BOOLEAN NOT NULL DEFAULT false,
	verification_source TEXT NOT NULL DEFAULT '',
	UNIQUE (company_name, license_type)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_companies_sector ON companies(sector);
CREATE INDEX IF NOT EXISTS idx_companies_status ON companies(verification_status);
CREATE INDEX IF NOT EXISTS idx_funding_company_id ON funding_rounds(company_id);
CREATE INDEX IF NOT EXISTS idx_updates_company_id ON company_updates(company_id);
CREATE INDEX IF NOT EXISTS idx_metrics_company_id ON metrics(company_id);
CREATE INDEX IF NOT EXISTS idx_regulatory_company_id ON regulatory_info(company_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Runs

func (s *PostgresStore) CreateRun(ctx context.Context) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, status, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		id, string(model.RunStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &model.Run{
		ID:        id,
		Status:    model.RunStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update run status %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("run not found: %s", runID)
	}
	return nil
}

func (s *PostgresStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, summary *model.RunSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal summary")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, summary = $2, updated_at = $3 WHERE id = $4`,
		string(status), summaryJSON, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: finish run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("run not found: %s", runID)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, status, summary, created_at, updated_at FROM runs WHERE id = $1`,
		runID,
	)

	r, err := scanRunPG(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return r, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, status, summary, created_at, updated_at FROM runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $1`
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT ` + placeholder(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET ` + placeholder(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRunPG(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}

// Checkpoints

func (s *PostgresStore) SaveCheckpoint(ctx context.Context, cp *model.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal checkpoint")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO checkpoints (run_id, data, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (run_id) DO UPDATE SET data = EXCLUDED.data, created_at = EXCLUDED.created_at`,
		cp.RunID, data, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: save checkpoint %s", cp.RunID)
}

func (s *PostgresStore) LatestCheckpoint(ctx context.Context) (*model.Checkpoint, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT data FROM checkpoints ORDER BY created_at DESC LIMIT 1`,
	)

	var data []byte
	err := row.Scan(&data)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: latest checkpoint")
	}

	var cp model.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal checkpoint")
	}
	return &cp, nil
}

func (s *PostgresStore) DeleteCheckpoint(ctx context.Context, runID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM checkpoints WHERE run_id = $1`, runID)
	return eris.Wrapf(err, "postgres: delete checkpoint %s", runID)
}

// Companies

func (s *PostgresStore) UpsertCompany(ctx context.Context, c *model.Company) (bool, error) {
	sourceURLs := c.SourceURLs
	if sourceURLs == nil {
		sourceURLs = map[string]string{}
	}
	urlsJSON, err := json.Marshal(sourceURLs)
	if err != nil {
		return false, eris.Wrap(err, "postgres: marshal source urls")
	}

	now := time.Now().UTC()

	// xmax = 0 only for freshly inserted rows; it distinguishes insert
	// from update without a second round trip.
	row := s.pool.QueryRow(ctx,
		`INSERT INTO companies (
			entity_key, name, website, sector, sub_sector, business_model,
			short_description, long_description, founded_year, team_size,
			founders, headquarters, linkedin_url, twitter_url, crunchbase_url,
			sources, source_urls, verification_status, quality_score,
			cac_verified, cbn_licensed, sec_registered, naicom_licensed,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		ON CONFLICT (entity_key) DO UPDATE SET
			name = EXCLUDED.name, website = EXCLUDED.website, sector = EXCLUDED.sector,
			sub_sector = EXCLUDED.sub_sector, business_model = EXCLUDED.business_model,
			short_description = EXCLUDED.short_description, long_description = EXCLUDED.long_description,
			founded_year = EXCLUDED.founded_year, team_size = EXCLUDED.team_size,
			founders = EXCLUDED.founders, headquarters = EXCLUDED.headquarters,
			linkedin_url = EXCLUDED.linkedin_url, twitter_url = EXCLUDED.twitter_url,
			crunchbase_url = EXCLUDED.crunchbase_url, sources = EXCLUDED.sources,
			source_urls = EXCLUDED.source_urls, verification_status = EXCLUDED.verification_status,
			quality_score = EXCLUDED.quality_score, cac_verified = EXCLUDED.cac_verified,
			cbn_licensed = EXCLUDED.cbn_licensed, sec_registered = EXCLUDED.sec_registered,
			naicom_licensed = EXCLUDED.naicom_licensed, updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0) AS inserted`,
		c.EntityKey, c.Name, c.Website, c.Sector, c.SubSector, c.BusinessModel,
		c.ShortDescription, c.LongDescription, c.FoundedYear, c.TeamSize,
		orEmpty(c.Founders), c.Headquarters, c.LinkedInURL, c.TwitterURL, c.CrunchbaseURL,
		orEmpty(c.Sources), urlsJSON, string(c.VerificationStatus), c.QualityScore,
		c.CACVerified, c.CBNLicensed, c.SECRegistered, c.NAICOMLicensed,
		now, now,
	)

	var inserted bool
	if err := row.Scan(&c.ID, &inserted); err != nil {
		return false, eris.Wrapf(err, "postgres: upsert company %s", c.EntityKey)
	}
	c.UpdatedAt = now
	return inserted, nil
}

func (s *PostgresStore) GetCompany(ctx context.Context, entityKey string) (*model.Company, error) {
	row := s.pool.QueryRow(ctx, companySelectPG+` WHERE entity_key = $1`, entityKey)

	c, err := scanCompanyPG(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get company %s", entityKey)
	}
	return c, nil
}

func (s *PostgresStore) ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error) {
	query := companySelectPG + ` WHERE 1=1`
	var args []any

	if filter.Sector != "" {
		args = append(args, filter.Sector)
		query += ` AND sector = ` + placeholder(len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND verification_status = ` + placeholder(len(args))
	}
	if filter.MinQuality > 0 {
		args = append(args, filter.MinQuality)
		query += ` AND quality_score >= ` + placeholder(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += ` AND name ILIKE ` + placeholder(len(args))
	}
	query += ` ORDER BY quality_score DESC, name ASC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT ` + placeholder(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET ` + placeholder(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		c, err := scanCompanyPG(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		companies = append(companies, *c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list companies iterate")
}

// Sub-records, bulk-inserted with COPY.

func (s *PostgresStore) InsertFundingRounds(ctx context.Context, frs []model.FundingRound) error {
	rows := make([][]any, 0, len(frs))
	for _, fr := range frs {
		rows = append(rows, []any{
			nullableID(fr.CompanyID), fr.CompanyKey, fr.CompanyName, fr.RoundType, fr.RoundName,
			fr.Amount, fr.Currency, fr.AmountUSD, fr.IsDisclosed, fr.AnnouncedDate,
			orEmpty(fr.LeadInvestors), orEmpty(fr.ParticipatingInvestors), fr.Source, fr.SourceURL,
		})
	}

	_, err := db.CopyFrom(ctx, s.pool, "funding_rounds", []string{
		"company_id", "company_key", "company_name", "round_type", "round_name",
		"amount", "currency", "amount_usd", "is_disclosed", "announced_date",
		"lead_investors", "participating_investors", "source", "source_url",
	}, rows)
	return eris.Wrap(err, "postgres: insert funding rounds")
}

func (s *PostgresStore) InsertUpdates(ctx context.Context, us []model.CompanyUpdate) error {
	rows := make([][]any, 0, len(us))
	for _, u := range us {
		rows = append(rows, []any{
			nullableID(u.CompanyID), u.CompanyKey, u.CompanyName, u.UpdateType, u.Title,
			u.Description, u.SourceName, u.SourceURL, u.UpdateDate,
		})
	}

	_, err := db.CopyFrom(ctx, s.pool, "company_updates", []string{
		"company_id", "company_key", "company_name", "update_type", "title",
		"description", "source_name", "source_url", "update_date",
	}, rows)
	return eris.Wrap(err, "postgres: insert updates")
}

func (s *PostgresStore) InsertMetrics(ctx context.Context, ms []model.Metric) error {
	rows := make([][]any, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []any{
			nullableID(m.CompanyID), m.CompanyKey, m.CompanyName, m.MetricType, m.Value,
			m.Currency, m.Unit, m.PeriodType, m.PeriodDate, m.ConfidenceLevel,
			m.Source, m.SourceURL,
		})
	}

	_, err := db.CopyFrom(ctx, s.pool, "metrics", []string{
		"company_id", "company_key", "company_name", "metric_type", "value",
		"currency", "unit", "period_type", "period_date", "confidence_level",
		"source", "source_url",
	}, rows)
	return eris.Wrap(err, "postgres: insert metrics")
}

func (s *PostgresStore) UpsertRegulatory(ctx context.Context, ris []model.RegulatoryInfo) error {
	rows := make([][]any, 0, len(ris))
	for _, ri := range ris {
		rows = append(rows, []any{
			nullableID(ri.CompanyID), ri.CompanyKey, ri.CompanyName, ri.LicenseType, ri.LicenseNumber,
			ri.Status, ri.IssueDate, ri.Verified, ri.VerificationSource,
		})
	}

	_, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table: "regulatory_info",
		Columns: []string{
			"company_id", "company_key", "company_name", "license_type", "license_number",
			"status", "issue_date", "verified", "verification_source",
		},
		ConflictKeys: []string{"company_name", "license_type"},
	}, rows)
	return eris.Wrap(err, "postgres: upsert regulatory info")
}

// helpers

const companySelectPG = `SELECT
	id, entity_key, name, website, sector, sub_sector, business_model,
	short_description, long_description, founded_year, team_size,
	founders, headquarters, linkedin_url, twitter_url, crunchbase_url,
	sources, source_urls, verification_status, quality_score,
	cac_verified, cbn_licensed, sec_registered, naicom_licensed,
	created_at, updated_at
FROM companies`

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func scanRunPG(row pgx.Row) (*model.Run, error) {
	var r model.Run
	var summaryJSON []byte

	if err := row.Scan(&r.ID, &r.Status, &summaryJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}

	if len(summaryJSON) > 0 {
		r.Summary = &model.RunSummary{}
		if err := json.Unmarshal(summaryJSON, r.Summary); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal summary")
		}
	}
	return &r, nil
}

func scanCompanyPG(row pgx.Row) (*model.Company, error) {
	var c model.Company
	var urlsJSON []byte

	err := row.Scan(
		&c.ID, &c.EntityKey, &c.Name, &c.Website, &c.Sector, &c.SubSector, &c.BusinessModel,
		&c.ShortDescription, &c.LongDescription, &c.FoundedYear, &c.TeamSize,
		&c.Founders, &c.Headquarters, &c.LinkedInURL, &c.TwitterURL, &c.CrunchbaseURL,
		&c.Sources, &urlsJSON, &c.VerificationStatus, &c.QualityScore,
		&c.CACVerified, &c.CBNLicensed, &c.SECRegistered, &c.NAICOMLicensed,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(urlsJSON) > 0 {
		if err := json.Unmarshal(urlsJSON, &c.SourceURLs); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal source urls")
		}
	}
	return &c, nil
}
