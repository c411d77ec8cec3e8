package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lemina/intel-cli/internal/model"
)

func TestPrintSummary(t *testing.T) {
	s := &model.RunSummary{
		RecordsBySource: map[string]int{"techcabal": 12, "seed": 20},
		FailedSources: []model.SourceFailure{
			{Source: "techpoint", Error: "fetch: connection refused"},
		},
		SourcesResumed:  []string{"seed"},
		Companies:       25,
		Verified:        3,
		CrossReferenced: 7,
		SelfReported:    15,
		FundingRounds:   4,
		Updates:         9,
		AverageQuality:  61.4,
		RecordsDropped:  2,
		UnlinkedRecords: 1,

		CompaniesInserted: 20,
		CompaniesUpdated:  5,
	}

	var buf bytes.Buffer
	printSummary(&buf, s)

	output := buf.String()
	assert.Contains(t, output, "techcabal")
	assert.Contains(t, output, "12")
	assert.Contains(t, output, "FAILED: fetch: connection refused")
	assert.Contains(t, output, "resumed from checkpoint")
	assert.Contains(t, output, "25 (20 new, 5 updated)")
	assert.Contains(t, output, "average quality:")
	assert.Contains(t, output, "61.4")
	assert.Contains(t, output, "dropped records:")
	assert.Contains(t, output, "unlinked sub-records:")

	// Source rows come before the failure rows and stay alphabetical.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("seed")), bytes.Index(buf.Bytes(), []byte("techcabal")))
}

func TestPrintSummary_CleanRun(t *testing.T) {
	s := &model.RunSummary{
		RecordsBySource: map[string]int{"seed": 20},
		Companies:       20,
		SelfReported:    20,
		AverageQuality:  58.0,
	}

	var buf bytes.Buffer
	printSummary(&buf, s)

	output := buf.String()
	assert.NotContains(t, output, "FAILED")
	assert.NotContains(t, output, "resumed")
	assert.NotContains(t, output, "dropped records")
	assert.NotContains(t, output, "unlinked")
}
