package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRecord_Accessors(t *testing.T) {
	r := RawRecord{
		"name":       "Koolboks",
		"team_size":  40,
		"founders":   []string{"Ayoola Dominic"},
		"source":     "techcabal",
		"source_url": "https://techcabal.com/a",
		"funding": map[string]any{
			"round_type": "seed",
		},
	}

	assert.Equal(t, "Koolboks", r.Str("name"))
	assert.Equal(t, 40, r.Int("team_size"))
	assert.Equal(t, []string{"Ayoola Dominic"}, r.StrList("founders"))
	assert.Equal(t, "techcabal", r.Source())
	assert.Equal(t, "https://techcabal.com/a", r.SourceURL())
	assert.Equal(t, "seed", r.Map("funding").Str("round_type"))
}

func TestRawRecord_MissingKeys(t *testing.T) {
	r := RawRecord{}
	assert.Equal(t, "", r.Str("name"))
	assert.Equal(t, 0, r.Int("team_size"))
	assert.Nil(t, r.StrList("founders"))
	assert.Nil(t, r.Map("funding"))
}

func TestRawRecord_JSONRoundTrip(t *testing.T) {
	// Checkpoint snapshots pass records through JSON; numbers come back as
	// float64 and lists as []any. Accessors must still work.
	in := RawRecord{
		"name":      "Koolboks",
		"team_size": 40,
		"founders":  []string{"Ayoola Dominic", "Deborah Gael"},
	}
	buf, err := json.Marshal(in)
	require.NoError(t, err)

	var out RawRecord
	require.NoError(t, json.Unmarshal(buf, &out))

	assert.Equal(t, "Koolboks", out.Str("name"))
	assert.Equal(t, 40, out.Int("team_size"))
	assert.Equal(t, []string{"Ayoola Dominic", "Deborah Gael"}, out.StrList("founders"))
}

func TestCheckpoint_CompletedRecords(t *testing.T) {
	cp := &Checkpoint{
		RunID: "run-1",
		Sources: map[string]SourceCheckpoint{
			"techcabal": {Complete: true, Records: []RawRecord{{"name": "Accrue"}}},
			"techpoint": {Complete: false, Error: "http 503"},
		},
	}

	done := cp.CompletedRecords()
	require.Len(t, done, 1)
	assert.Equal(t, "Accrue", done["techcabal"][0].Str("name"))
}
