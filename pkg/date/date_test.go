// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package date_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogakzip/api/pkg/date"
)

func TestParse(t *testing.T) {
	parsed, err := date.Parse("2026-02-14")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-14", parsed.String())

	_, err = date.Parse("14/02/2026")
	assert.Error(t, err)

	_, err = date.Parse("2026-02-30")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Moment *date.Date `json:"moment"`
	}

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"moment":"2026-02-14"}`), &decoded))
	require.NotNil(t, decoded.Moment)
	assert.Equal(t, "2026-02-14", decoded.Moment.String())

	encoded, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"moment":"2026-02-14"}`, string(encoded))
}

func TestScan(t *testing.T) {
	var d date.Date

	require.NoError(t, d.Scan(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-02-14", d.String())

	require.NoError(t, d.Scan("2026-03-01"))
	assert.Equal(t, "2026-03-01", d.String())

	assert.Error(t, d.Scan(42))
}
