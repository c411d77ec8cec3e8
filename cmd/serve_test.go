package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemina/intel-cli/internal/model"
	"github.com/lemina/intel-cli/internal/store"
)

func newServeTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "intel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

// newServeTestRouter wires the same handlers the serve command registers,
// without the listener lifecycle.
func newServeTestRouter(st store.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/runs", handleListRuns(st))
	r.Get("/api/runs/{id}", handleGetRun(st))
	r.Get("/api/companies", handleListCompanies(st))
	r.Get("/api/companies/{key}", handleGetCompany(st))
	return r
}

func TestServeHealth(t *testing.T) {
	r := newServeTestRouter(newServeTestStore(t))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServeListRuns(t *testing.T) {
	st := newServeTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, st.FinishRun(ctx, run.ID, model.RunStatusComplete, &model.RunSummary{Companies: 3}))

	r := newServeTestRouter(st)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/runs?status=complete", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Runs []model.Run `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Runs, 1)
	assert.Equal(t, run.ID, body.Runs[0].ID)
	assert.Equal(t, model.RunStatusComplete, body.Runs[0].Status)
	require.NotNil(t, body.Runs[0].Summary)
	assert.Equal(t, 3, body.Runs[0].Summary.Companies)
}

func TestServeGetRun_NotFound(t *testing.T) {
	r := newServeTestRouter(newServeTestStore(t))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/runs/no-such-run", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestServeListCompanies(t *testing.T) {
	st := newServeTestStore(t)
	ctx := context.Background()

	for _, c := range []model.Company{
		{
			EntityKey:          "flutterwave",
			Name:               "Flutterwave",
			Sector:             "Fintech",
			Sources:            []string{"techcabal", "seed"},
			VerificationStatus: model.StatusCrossReferenced,
			QualityScore:       80,
		},
		{
			EntityKey:          "ulesson",
			Name:               "uLesson",
			Sector:             "Edtech",
			Sources:            []string{"seed"},
			VerificationStatus: model.StatusSelfReported,
			QualityScore:       55,
		},
	} {
		_, err := st.UpsertCompany(ctx, &c)
		require.NoError(t, err)
	}

	r := newServeTestRouter(st)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/companies?sector=Fintech&min_quality=60", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Companies []model.Company `json:"companies"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Companies, 1)
	assert.Equal(t, "Flutterwave", body.Companies[0].Name)
}

func TestServeGetCompany(t *testing.T) {
	st := newServeTestStore(t)
	ctx := context.Background()

	_, err := st.UpsertCompany(ctx, &model.Company{
		EntityKey:          "paystack",
		Name:               "Paystack",
		Sector:             "Fintech",
		Sources:            []string{"seed"},
		VerificationStatus: model.StatusSelfReported,
		QualityScore:       60,
	})
	require.NoError(t, err)

	r := newServeTestRouter(st)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/companies/paystack", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var c model.Company
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	assert.Equal(t, "Paystack", c.Name)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/companies/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
