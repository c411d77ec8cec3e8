package triangulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemina/intel-cli/internal/model"
)

var testPriorities = map[string]int{
	"techcabal": 1,
	"techpoint": 2,
	"seed":      3,
}

func process(t *testing.T, bySource map[string][]model.RawRecord) *Result {
	t.Helper()
	res, err := New().Process(bySource, testPriorities)
	require.NoError(t, err)
	return res
}

func TestProcess_WebsiteMatchMerges(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {
			{"name": "Accrue", "website": "https://accrue.com", "source": "techcabal", "source_url": "https://techcabal.com/a"},
		},
		"techpoint": {
			{"name": "Accrue Inc", "website": "http://www.accrue.com/", "source": "techpoint", "source_url": "https://techpoint.africa/b"},
		},
	})

	require.Len(t, res.Companies, 1)
	c := res.Companies[0]
	assert.Equal(t, "Accrue", c.Name) // higher-priority source created the entity
	assert.Len(t, c.Sources, 2)
	assert.Equal(t, model.StatusCrossReferenced, c.VerificationStatus)
	assert.Equal(t, "accrue.com", c.EntityKey)
}

func TestProcess_FuzzyNameMatchMerges(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {{"name": "Koolboks", "source": "techcabal"}},
		"techpoint": {{"name": "KoolBoks", "source": "techpoint"}},
	})

	require.Len(t, res.Companies, 1)
	assert.Equal(t, model.StatusCrossReferenced, res.Companies[0].VerificationStatus)
	assert.Equal(t, "koolboks", res.Companies[0].EntityKey)
}

func TestProcess_DistinctCompaniesStaySeparate(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {
			{"name": "Paystack", "website": "https://paystack.com", "source": "techcabal"},
			{"name": "Flutterwave", "website": "https://flutterwave.com", "source": "techcabal"},
		},
	})

	assert.Len(t, res.Companies, 2)
}

func TestProcess_DropsUnusableRecords(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {
			{"website": "https://noname.com", "source": "techcabal"},
			{"name": "7 African Startups Powering Sales", "source": "techcabal"},
			{"name": "Paystack", "source": "techcabal"},
		},
	})

	assert.Equal(t, 2, res.Dropped)
	assert.Len(t, res.DropReasons, 2)
	require.Len(t, res.Companies, 1)
	assert.Equal(t, "Paystack", res.Companies[0].Name)
}

func TestProcess_Deterministic(t *testing.T) {
	bySource := map[string][]model.RawRecord{
		"techpoint": {
			{"name": "Accrue Inc", "website": "https://accrue.com", "long_description": "a longer description from techpoint", "source": "techpoint"},
			{"name": "Kuda", "source": "techpoint"},
		},
		"techcabal": {
			{"name": "Accrue", "website": "https://accrue.com", "long_description": "short one", "source": "techcabal"},
			{"name": "Moni", "source": "techcabal"},
		},
		"seed": {
			{"name": "KUDA", "website": "https://kuda.com", "source": "seed"},
		},
	}

	first := process(t, bySource)
	for range 20 {
		again := process(t, bySource)
		require.Equal(t, first.Companies, again.Companies)
	}

	// Entity creation order follows source priority: techcabal first.
	require.Len(t, first.Companies, 3)
	assert.Equal(t, "Accrue", first.Companies[0].Name)
	assert.Equal(t, "Moni", first.Companies[1].Name)
	assert.Equal(t, "Kuda", first.Companies[2].Name)
}

func TestProcess_MergeSemantics(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {{
			"name":             "Koolboks",
			"website":          "https://koolboks.com",
			"long_description": "short",
			"founders":         []string{"Ayoola Dominic"},
			"source":           "techcabal",
		}},
		"techpoint": {{
			"name":             "KoolBoks",
			"long_description": "a considerably longer company description",
			"founded_year":     2018,
			"founders":         []string{"Deborah Gael"},
			"source":           "techpoint",
		}},
	})

	require.Len(t, res.Companies, 1)
	c := res.Companies[0]
	assert.Equal(t, "a considerably longer company description", c.LongDescription)
	assert.Equal(t, 2018, c.FoundedYear)
	assert.Equal(t, []string{"Ayoola Dominic", "Deborah Gael"}, c.Founders)
	assert.Equal(t, "https://koolboks.com", c.Website)
}

func TestProcess_LateWebsiteIndexedForExactMatch(t *testing.T) {
	// First observation has no website; the second fills it; the third
	// matches by host even though its name is dissimilar enough to miss
	// the fuzzy path without the site.
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {
			{"name": "Koolboks", "source": "techcabal"},
			{"name": "KoolBoks", "website": "https://koolboks.com", "source": "techcabal"},
		},
		"techpoint": {
			{"name": "Koolboks Cooling Solutions", "website": "https://koolboks.com", "source": "techpoint"},
		},
	})

	require.Len(t, res.Companies, 1)
	assert.Len(t, res.Companies[0].Sources, 2)
}

func TestProcess_FundingRoundExtractionAndLinkage(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {{
			"name":    "Accrue",
			"website": "https://accrue.com",
			"source":  "techcabal",
			"funding": map[string]any{
				"round_type": "seed",
				"amount_usd": 1_600_000.0,
			},
		}},
	})

	require.Len(t, res.FundingRounds, 1)
	fr := res.FundingRounds[0]
	assert.Equal(t, "accrue.com", fr.CompanyKey)
	assert.Equal(t, "seed", fr.RoundType)
	assert.Equal(t, 1_600_000.0, fr.AmountUSD)
	assert.True(t, fr.IsDisclosed)
	assert.Equal(t, 0, res.Unlinked)

	// The funding record also yields a funding-typed update.
	require.Len(t, res.Updates, 1)
	assert.Equal(t, model.UpdateFunding, res.Updates[0].UpdateType)
	assert.Equal(t, "accrue.com", res.Updates[0].CompanyKey)
}

func TestProcess_RegulatoryExtractionSetsFlags(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{
		"seed": {{
			"name":    "Kuda Bank",
			"website": "https://kuda.com",
			"source":  "seed",
			"regulatory": []any{
				map[string]any{
					"license_type": "cbn_microfinance",
					"verified":     true,
				},
				map[string]any{
					// No license type, skipped.
					"status": "active",
				},
			},
		}},
	})

	require.Len(t, res.Companies, 1)
	c := res.Companies[0]
	assert.True(t, c.CBNLicensed)
	assert.False(t, c.SECRegistered)

	require.Len(t, res.Regulatory, 1)
	ri := res.Regulatory[0]
	assert.Equal(t, "kuda.com", ri.CompanyKey)
	assert.Equal(t, "cbn_microfinance", ri.LicenseType)
	assert.Equal(t, "active", ri.Status)
	assert.True(t, ri.Verified)
	assert.Equal(t, "seed", ri.VerificationSource)
	assert.Equal(t, 0, res.Unlinked)
}

func TestProcess_UnlinkedSubRecordRetained(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {
			{"name": "Paystack", "source": "techcabal"},
			// Dropped as a headline, so its update has no entity to land on.
			{"name": "9 Fintechs To Watch", "source": "techcabal"},
		},
	})

	require.Len(t, res.Companies, 1)
	require.Len(t, res.Updates, 2)
	assert.Equal(t, "", res.Updates[1].CompanyKey)
	assert.Equal(t, 1, res.Unlinked)
}

func TestProcess_LinkageAfterNameVariantCollapse(t *testing.T) {
	// The sub-record references a name variant that only exists as a
	// canonical entity after deduplication collapses the variants.
	res := process(t, map[string][]model.RawRecord{
		"techcabal": {{"name": "Kuda Bank", "website": "https://kuda.com", "source": "techcabal"}},
		"techpoint": {{
			"name":   "Kuda Bank Ltd",
			"source": "techpoint",
			"funding": map[string]any{
				"round_type": "series_b",
			},
		}},
	})

	require.Len(t, res.Companies, 1)
	require.Len(t, res.FundingRounds, 1)
	assert.Equal(t, "kuda.com", res.FundingRounds[0].CompanyKey)
}

func TestProcess_EmptyInput(t *testing.T) {
	res := process(t, map[string][]model.RawRecord{})
	assert.Empty(t, res.Companies)
	assert.Zero(t, res.Dropped)
}
