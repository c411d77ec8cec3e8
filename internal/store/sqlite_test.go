package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemina/intel-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

// --- Runs ---

func TestSQLite_RunLifecycle(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	require.NoError(t, st.UpdateRunStatus(ctx, run.ID, model.RunStatusFetching))

	summary := &model.RunSummary{
		RecordsBySource: map[string]int{"techcabal": 12, "seed": 20},
		Companies:       25,
		AverageQuality:  71.5,
	}
	require.NoError(t, st.FinishRun(ctx, run.ID, model.RunStatusComplete, summary))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 25, got.Summary.Companies)
	assert.Equal(t, 12, got.Summary.RecordsBySource["techcabal"])
}

func TestSQLite_UpdateRunStatus_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.UpdateRunStatus(context.Background(), "no-such-run", model.RunStatusFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ListRuns_FilterByStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	r1, err := st.CreateRun(ctx)
	require.NoError(t, err)
	_, err = st.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, st.FinishRun(ctx, r1.ID, model.RunStatusFailed, &model.RunSummary{}))

	failed, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, r1.ID, failed[0].ID)

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// --- Checkpoints ---

func TestSQLite_Checkpoint_RoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)

	cp := &model.Checkpoint{
		RunID: run.ID,
		Sources: map[string]model.SourceCheckpoint{
			"techcabal": {Complete: true, Records: []model.RawRecord{{"name": "Moove"}}},
			"techpoint": {Complete: false, Error: "http 500"},
		},
	}
	require.NoError(t, st.SaveCheckpoint(ctx, cp))

	got, err := st.LatestCheckpoint(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.ID, got.RunID)
	assert.True(t, got.Sources["techcabal"].Complete)
	assert.Equal(t, "Moove", got.Sources["techcabal"].Records[0].Str("name"))
	assert.Equal(t, "http 500", got.Sources["techpoint"].Error)
}

func TestSQLite_Checkpoint_Overwrite(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)

	require.NoError(t, st.SaveCheckpoint(ctx, &model.Checkpoint{
		RunID:   run.ID,
		Sources: map[string]model.SourceCheckpoint{"seed": {Complete: true}},
	}))
	require.NoError(t, st.SaveCheckpoint(ctx, &model.Checkpoint{
		RunID: run.ID,
		Sources: map[string]model.SourceCheckpoint{
			"seed":      {Complete: true},
			"techcabal": {Complete: true},
		},
	}))

	got, err := st.LatestCheckpoint(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Sources, 2)
}

func TestSQLite_Checkpoint_DeleteAndEmpty(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	got, err := st.LatestCheckpoint(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, st.SaveCheckpoint(ctx, &model.Checkpoint{RunID: run.ID, Sources: map[string]model.SourceCheckpoint{}}))
	require.NoError(t, st.DeleteCheckpoint(ctx, run.ID))

	got, err = st.LatestCheckpoint(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// --- Companies ---

func testCompany(key string) *model.Company {
	return &model.Company{
		EntityKey:          key,
		Name:               "Paystack",
		Website:            "https://paystack.com",
		Sector:             "Fintech",
		ShortDescription:   "Modern online payments for Africa",
		Founders:           []string{"Shola Akinlade", "Ezra Olubi"},
		Sources:            []string{"seed", "techcabal"},
		SourceURLs:         map[string]string{"seed": "", "techcabal": "https://techcabal.com/a1"},
		VerificationStatus: model.StatusCrossReferenced,
		QualityScore:       85,
		CBNLicensed:        true,
	}
}

func TestSQLite_UpsertCompany_InsertThenUpdate(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	c := testCompany("paystack.com")
	inserted, err := st.UpsertCompany(ctx, c)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotZero(t, c.ID)

	c.QualityScore = 95
	inserted, err = st.UpsertCompany(ctx, c)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := st.GetCompany(ctx, "paystack.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, 95, got.QualityScore)
	assert.Equal(t, []string{"Shola Akinlade", "Ezra Olubi"}, got.Founders)
	assert.Equal(t, model.StatusCrossReferenced, got.VerificationStatus)
	assert.True(t, got.CBNLicensed)
	assert.Equal(t, "https://techcabal.com/a1", got.SourceURLs["techcabal"])
}

func TestSQLite_GetCompany_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.GetCompany(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_ListCompanies_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := testCompany("paystack.com")
	b := testCompany("jumia.com.ng")
	b.Name = "Jumia"
	b.Sector = "E-commerce"
	b.QualityScore = 60
	b.VerificationStatus = model.StatusSelfReported

	for _, c := range []*model.Company{a, b} {
		_, err := st.UpsertCompany(ctx, c)
		require.NoError(t, err)
	}

	fintech, err := st.ListCompanies(ctx, CompanyFilter{Sector: "Fintech"})
	require.NoError(t, err)
	require.Len(t, fintech, 1)
	assert.Equal(t, "Paystack", fintech[0].Name)

	quality, err := st.ListCompanies(ctx, CompanyFilter{MinQuality: 70})
	require.NoError(t, err)
	require.Len(t, quality, 1)
	assert.Equal(t, "Paystack", quality[0].Name)

	search, err := st.ListCompanies(ctx, CompanyFilter{Search: "jum"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Jumia", search[0].Name)

	all, err := st.ListCompanies(ctx, CompanyFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ordered by quality score descending.
	assert.Equal(t, "Paystack", all[0].Name)
}

// --- Sub-records ---

func TestSQLite_InsertSubRecords(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	c := testCompany("paystack.com")
	_, err := st.UpsertCompany(ctx, c)
	require.NoError(t, err)

	frs := []model.FundingRound{{
		CompanyName: "Paystack",
		CompanyKey:  "paystack.com",
		CompanyID:   c.ID,
		RoundType:   "seed",
		Amount:      1_580_000,
		Currency:    "usd",
		AmountUSD:   1_580_000,
		IsDisclosed: true,
		Source:      "techcabal",
	}}
	require.NoError(t, st.InsertFundingRounds(ctx, frs))
	assert.NotZero(t, frs[0].ID)

	us := []model.CompanyUpdate{{
		CompanyName: "Paystack",
		CompanyKey:  "paystack.com",
		CompanyID:   c.ID,
		UpdateType:  model.UpdateFunding,
		Title:       "Paystack - techcabal article",
		SourceName:  "techcabal",
	}}
	require.NoError(t, st.InsertUpdates(ctx, us))
	assert.NotZero(t, us[0].ID)

	ms := []model.Metric{{
		CompanyName: "Paystack",
		CompanyID:   c.ID,
		MetricType:  "merchants",
		Value:       200_000,
		Source:      "techcabal",
	}}
	require.NoError(t, st.InsertMetrics(ctx, ms))
	assert.NotZero(t, ms[0].ID)
}

func TestSQLite_InsertSubRecords_UnlinkedAllowed(t *testing.T) {
	st := newTestSQLiteStore(t)

	// No company row exists; company_id stays NULL and the insert succeeds.
	us := []model.CompanyUpdate{{
		CompanyName: "Unknown Startup",
		UpdateType:  model.UpdateNews,
		Title:       "Unknown Startup - techpoint article",
		SourceName:  "techpoint",
	}}
	require.NoError(t, st.InsertUpdates(context.Background(), us))
}

func TestSQLite_UpsertRegulatory_Idempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	ris := []model.RegulatoryInfo{{
		CompanyName: "Paystack",
		LicenseType: "psp",
		Status:      "active",
		Verified:    true,
	}}
	require.NoError(t, st.UpsertRegulatory(ctx, ris))
	require.NoError(t, st.UpsertRegulatory(ctx, ris))

	var n int
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(*) FROM regulatory_info`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLite_InsertSubRecords_EmptyIsNoop(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.InsertFundingRounds(ctx, nil))
	require.NoError(t, st.InsertUpdates(ctx, nil))
	require.NoError(t, st.InsertMetrics(ctx, nil))
	require.NoError(t, st.UpsertRegulatory(ctx, nil))
}
