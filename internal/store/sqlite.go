package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/lemina/intel-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	status     TEXT NOT NULL DEFAULT 'queued',
	summary    TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS checkpoints (
	run_id     TEXT PRIMARY KEY REFERENCES runs(id),
	data       TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS companies (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
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
	founders            TEXT NOT NULL DEFAULT '[]',
	headquarters        TEXT NOT NULL DEFAULT '',
	linkedin_url        TEXT NOT NULL DEFAULT '',
	twitter_url         TEXT NOT NULL DEFAULT '',
	crunchbase_url      TEXT NOT NULL DEFAULT '',
	sources             TEXT NOT NULL DEFAULT '[]',
	source_urls         TEXT NOT NULL DEFAULT '{}',
	verification_status TEXT NOT NULL DEFAULT 'unverified',
	quality_score       INTEGER NOT NULL DEFAULT 0,
	cac_verified        INTEGER NOT NULL DEFAULT 0,
	cbn_licensed        INTEGER NOT NULL DEFAULT 0,
	sec_registered      INTEGER NOT NULL DEFAULT 0,
	naicom_licensed     INTEGER NOT NULL DEFAULT 0,
	created_at          DATETIME NOT NULL,
	updated_at          DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS funding_rounds (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	company_id   INTEGER REFERENCES companies(id),
	company_key  TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL,
	round_type   TEXT NOT NULL,
	round_name   TEXT NOT NULL DEFAULT '',
	amount       REAL NOT NULL DEFAULT 0,
	currency     TEXT NOT NULL DEFAULT 'usd',
	amount_usd   REAL NOT NULL DEFAULT 0,
	is_disclosed INTEGER NOT NULL DEFAULT 1,
	announced_date DATETIME,
	lead_investors TEXT NOT NULL DEFAULT '[]',
	participating_investors TEXT NOT NULL DEFAULT '[]',
	source       TEXT NOT NULL,
	source_url   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS company_updates (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	company_id   INTEGER REFERENCES companies(id),
	company_key  TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL,
	update_type  TEXT NOT NULL,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	source_name  TEXT NOT NULL,
	source_url   TEXT NOT NULL DEFAULT '',
	update_date  DATETIME
);

CREATE TABLE IF NOT EXISTS metrics (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	company_id   INTEGER REFERENCES companies(id),
	company_key  TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL,
	metric_type  TEXT NOT NULL,
	value        REAL NOT NULL,
	currency     TEXT NOT NULL DEFAULT '',
	unit         TEXT NOT NULL DEFAULT '',
	period_type  TEXT NOT NULL DEFAULT '',
	period_date  DATETIME,
	confidence_level TEXT NOT NULL DEFAULT 'medium',
	source       TEXT NOT NULL,
	source_url   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS regulatory_info (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	company_id     INTEGER REFERENCES companies(id),
	company_key    TEXT NOT NULL DEFAULT '',
	company_name   TEXT NOT NULL,
	license_type   TEXT NOT NULL,
	license_number TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	issue_date     DATETIME,
	verified       INTEGER NOT NULL DEFAULT 0,
	verification_source TEXT NOT NULL DEFAULT '',
	UNIQUE(company_name, license_type)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_companies_sector ON companies(sector);
CREATE INDEX IF NOT EXISTS idx_companies_status ON companies(verification_status);
CREATE INDEX IF NOT EXISTS idx_funding_company_id ON funding_rounds(company_id);
CREATE INDEX IF NOT EXISTS idx_updates_company_id ON company_updates(company_id);
CREATE INDEX IF NOT EXISTS idx_metrics_company_id ON metrics(company_id);
CREATE INDEX IF NOT EXISTS idx_regulatory_company_id ON regulatory_info(company_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Runs

func (s *SQLiteStore) CreateRun(ctx context.Context) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, string(model.RunStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.Run{
		ID:        id,
		Status:    model.RunStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update run status %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, summary *model.RunSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal summary")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, summary = ?, updated_at = ? WHERE id = ?`,
		string(status), string(summaryJSON), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, summary, created_at, updated_at FROM runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, status, summary, created_at, updated_at FROM runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// Checkpoints

func (s *SQLiteStore) SaveCheckpoint(ctx context.Context, cp *model.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal checkpoint")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO checkpoints (run_id, data, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET data = excluded.data, created_at = excluded.created_at`,
		cp.RunID, string(data), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save checkpoint %s", cp.RunID)
}

func (s *SQLiteStore) LatestCheckpoint(ctx context.Context) (*model.Checkpoint, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data FROM checkpoints ORDER BY created_at DESC LIMIT 1`,
	)

	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: latest checkpoint")
	}

	var cp model.Checkpoint
	if err := json.Unmarshal([]byte(data), &cp); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal checkpoint")
	}
	return &cp, nil
}

func (s *SQLiteStore) DeleteCheckpoint(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE run_id = ?`, runID)
	return eris.Wrapf(err, "sqlite: delete checkpoint %s", runID)
}

// Companies

func (s *SQLiteStore) UpsertCompany(ctx context.Context, c *model.Company) (bool, error) {
	founders, sources, sourceURLs, err := marshalCompanyJSON(c)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()

	var existingID int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM companies WHERE entity_key = ?`, c.EntityKey,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO companies (
				entity_key, name, website, sector, sub_sector, business_model,
				short_description, long_description, founded_year, team_size,
				founders, headquarters, linkedin_url, twitter_url, crunchbase_url,
				sources, source_urls, verification_status, quality_score,
				cac_verified, cbn_licensed, sec_registered, naicom_licensed,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.EntityKey, c.Name, c.Website, c.Sector, c.SubSector, c.BusinessModel,
			c.ShortDescription, c.LongDescription, c.FoundedYear, c.TeamSize,
			founders, c.Headquarters, c.LinkedInURL, c.TwitterURL, c.CrunchbaseURL,
			sources, sourceURLs, string(c.VerificationStatus), c.QualityScore,
			c.CACVerified, c.CBNLicensed, c.SECRegistered, c.NAICOMLicensed,
			now, now,
		)
		if err != nil {
			return false, eris.Wrapf(err, "sqlite: insert company %s", c.EntityKey)
		}
		c.ID, err = res.LastInsertId()
		if err != nil {
			return false, eris.Wrap(err, "sqlite: last insert id")
		}
		c.CreatedAt, c.UpdatedAt = now, now
		return true, nil

	case err != nil:
		return false, eris.Wrapf(err, "sqlite: lookup company %s", c.EntityKey)

	default:
		_, err := s.db.ExecContext(ctx,
			`UPDATE companies SET
				name = ?, website = ?, sector = ?, sub_sector = ?, business_model = ?,
				short_description = ?, long_description = ?, founded_year = ?, team_size = ?,
				founders = ?, headquarters = ?, linkedin_url = ?, twitter_url = ?, crunchbase_url = ?,
				sources = ?, source_urls = ?, verification_status = ?, quality_score = ?,
				cac_verified = ?, cbn_licensed = ?, sec_registered = ?, naicom_licensed = ?,
				updated_at = ?
			 WHERE id = ?`,
			c.Name, c.Website, c.Sector, c.SubSector, c.BusinessModel,
			c.ShortDescription, c.LongDescription, c.FoundedYear, c.TeamSize,
			founders, c.Headquarters, c.LinkedInURL, c.TwitterURL, c.CrunchbaseURL,
			sources, sourceURLs, string(c.VerificationStatus), c.QualityScore,
			c.CACVerified, c.CBNLicensed, c.SECRegistered, c.NAICOMLicensed,
			now, existingID,
		)
		if err != nil {
			return false, eris.Wrapf(err, "sqlite: update company %s", c.EntityKey)
		}
		c.ID = existingID
		c.UpdatedAt = now
		return false, nil
	}
}

func (s *SQLiteStore) GetCompany(ctx context.Context, entityKey string) (*model.Company, error) {
	row := s.db.QueryRowContext(ctx,
		companySelect+` WHERE entity_key = ?`, entityKey,
	)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (s *SQLiteStore) ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error) {
	query := companySelect + ` WHERE 1=1`
	var args []any

	if filter.Sector != "" {
		query += ` AND sector = ?`
		args = append(args, filter.Sector)
	}
	if filter.Status != "" {
		query += ` AND verification_status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.MinQuality > 0 {
		query += ` AND quality_score >= ?`
		args = append(args, filter.MinQuality)
	}
	if filter.Search != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+filter.Search+"%")
	}
	query += ` ORDER BY quality_score DESC, name ASC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: list companies iterate")
}

// Sub-records

func (s *SQLiteStore) InsertFundingRounds(ctx context.Context, frs []model.FundingRound) error {
	if len(frs) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range frs {
			fr := &frs[i]
			lead, err := json.Marshal(orEmpty(fr.LeadInvestors))
			if err != nil {
				return eris.Wrap(err, "sqlite: marshal lead investors")
			}
			part, err := json.Marshal(orEmpty(fr.ParticipatingInvestors))
			if err != nil {
				return eris.Wrap(err, "sqlite: marshal participating investors")
			}

			res, err := tx.ExecContext(ctx,
				`INSERT INTO funding_rounds (
					company_id, company_key, company_name, round_type, round_name,
					amount, currency, amount_usd, is_disclosed, announced_date,
					lead_investors, participating_investors, source, source_url
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				nullableID(fr.CompanyID), fr.CompanyKey, fr.CompanyName, fr.RoundType, fr.RoundName,
				fr.Amount, fr.Currency, fr.AmountUSD, fr.IsDisclosed, fr.AnnouncedDate,
				string(lead), string(part), fr.Source, fr.SourceURL,
			)
			if err != nil {
				return eris.Wrapf(err, "sqlite: insert funding round for %s", fr.CompanyName)
			}
			if fr.ID, err = res.LastInsertId(); err != nil {
				return eris.Wrap(err, "sqlite: last insert id")
			}
		}
		return nil
	})
}

func (s *SQLiteStore) InsertUpdates(ctx context.Context, us []model.CompanyUpdate) error {
	if len(us) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range us {
			u := &us[i]
			res, err := tx.ExecContext(ctx,
				`INSERT INTO company_updates (
					company_id, company_key, company_name, update_type, title,
					description, source_name, source_url, update_date
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				nullableID(u.CompanyID), u.CompanyKey, u.CompanyName, u.UpdateType, u.Title,
				u.Description, u.SourceName, u.SourceURL, u.UpdateDate,
			)
			if err != nil {
				return eris.Wrapf(err, "sqlite: insert update for %s", u.CompanyName)
			}
			if u.ID, err = res.LastInsertId(); err != nil {
				return eris.Wrap(err, "sqlite: last insert id")
			}
		}
		return nil
	})
}

func (s *SQLiteStore) InsertMetrics(ctx context.Context, ms []model.Metric) error {
	if len(ms) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range ms {
			m := &ms[i]
			res, err := tx.ExecContext(ctx,
				`INSERT INTO metrics (
					company_id, company_key, company_name, metric_type, value,
					currency, unit, period_type, period_date, confidence_level,
					source, source_url
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				nullableID(m.CompanyID), m.CompanyKey, m.CompanyName, m.MetricType, m.Value,
				m.Currency, m.Unit, m.PeriodType, m.PeriodDate, m.ConfidenceLevel,
				m.Source, m.SourceURL,
			)
			if err != nil {
				return eris.Wrapf(err, "sqlite: insert metric for %s", m.CompanyName)
			}
			if m.ID, err = res.LastInsertId(); err != nil {
				return eris.Wrap(err, "sqlite: last insert id")
			}
		}
		return nil
	})
}

func (s *SQLiteStore) UpsertRegulatory(ctx context.Context, ris []model.RegulatoryInfo) error {
	if len(ris) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range ris {
			ri := &ris[i]
			_, err := tx.ExecContext(ctx,
				`INSERT INTO regulatory_info (
					company_id, company_key, company_name, license_type, license_number,
					status, issue_date, verified, verification_source
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(company_name, license_type) DO UPDATE SET
					company_id = excluded.company_id,
					company_key = excluded.company_key,
					license_number = excluded.license_number,
					status = excluded.status,
					issue_date = excluded.issue_date,
					verified = excluded.verified,
					verification_source = excluded.verification_source`,
				nullableID(ri.CompanyID), ri.CompanyKey, ri.CompanyName, ri.LicenseType, ri.LicenseNumber,
				ri.Status, ri.IssueDate, ri.Verified, ri.VerificationSource,
			)
			if err != nil {
				return eris.Wrapf(err, "sqlite: upsert regulatory info for %s", ri.CompanyName)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit tx")
}

// helpers

const companySelect = `SELECT
	id, entity_key, name, website, sector, sub_sector, business_model,
	short_description, long_description, founded_year, team_size,
	founders, headquarters, linkedin_url, twitter_url, crunchbase_url,
	sources, source_urls, verification_status, quality_score,
	cac_verified, cbn_licensed, sec_registered, naicom_licensed,
	created_at, updated_at
FROM companies`

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.Run, error) {
	var r model.Run
	var summaryJSON sql.NullString

	err := row.Scan(&r.ID, &r.Status, &summaryJSON, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("run not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}

	if summaryJSON.Valid {
		r.Summary = &model.RunSummary{}
		if err := json.Unmarshal([]byte(summaryJSON.String), r.Summary); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal summary")
		}
	}
	return &r, nil
}

func scanCompany(row scannable) (*model.Company, error) {
	var c model.Company
	var founders, sources, sourceURLs string

	err := row.Scan(
		&c.ID, &c.EntityKey, &c.Name, &c.Website, &c.Sector, &c.SubSector, &c.BusinessModel,
		&c.ShortDescription, &c.LongDescription, &c.FoundedYear, &c.TeamSize,
		&founders, &c.Headquarters, &c.LinkedInURL, &c.TwitterURL, &c.CrunchbaseURL,
		&sources, &sourceURLs, &c.VerificationStatus, &c.QualityScore,
		&c.CACVerified, &c.CBNLicensed, &c.SECRegistered, &c.NAICOMLicensed,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan company")
	}

	if err := json.Unmarshal([]byte(founders), &c.Founders); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal founders")
	}
	if err := json.Unmarshal([]byte(sources), &c.Sources); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal sources")
	}
	if err := json.Unmarshal([]byte(sourceURLs), &c.SourceURLs); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal source urls")
	}
	return &c, nil
}

func marshalCompanyJSON(c *model.Company) (founders, sources, sourceURLs string, err error) {
	f, err := json.Marshal(orEmpty(c.Founders))
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal founders")
	}
	s, err := json.Marshal(orEmpty(c.Sources))
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal sources")
	}
	urls := c.SourceURLs
	if urls == nil {
		urls = map[string]string{}
	}
	u, err := json.Marshal(urls)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal source urls")
	}
	return string(f), string(s), string(u), nil
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}
