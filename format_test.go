package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/neonwatty/seating-arrangement-sub002/seating"
)

func weddingResults(t *testing.T) ([]Event, []EventResult) {
	t.Helper()
	events := weddingEvents(t)
	results := make([]EventResult, len(events))
	for i := range events {
		results[i] = runEvent(&events[i], DefaultConfig(), logr.Discard())
	}
	return events, results
}

func TestFormatResult(t *testing.T) {
	events, results := weddingResults(t)

	out := FormatResult(&events[0], results[0].Result)
	assert.Contains(t, out, "Event: Wedding (e1)")
	assert.Contains(t, out, "Score: 200.0 (previous 0.0, +200.0)")
	assert.Contains(t, out, "Table 1 [2/2] compatibility")
	assert.Contains(t, out, "  - Ann (100.0)")
	assert.Contains(t, out, "Moved: Ann, Ben")
	assert.NotContains(t, out, "Violations:")

	out = FormatResult(&events[1], results[1].Result)
	assert.Contains(t, out, "Moved: Cal Reed")
	assert.NotContains(t, out, "Dee,")
	assert.NotContains(t, out, "Unseated", "declined guests are not listed")
}

func TestFormatResult_Unseated(t *testing.T) {
	events, err := parseEvents(`{"id":"x","guests":[{"id":"A","name":"Ann"},{"id":"B","name":"Bo"}],"tables":[{"id":"T","capacity":1}]}`)
	require.NoError(t, err)
	r := runEvent(&events[0], DefaultConfig(), logr.Discard())

	out := FormatResult(&events[0], r.Result)
	assert.Contains(t, out, "Unseated: ")
	assert.Contains(t, out, "T [1/1]")
}

func TestFormatResult_UnseatedFollowsSelection(t *testing.T) {
	doc := `{"id":"x",
	  "guests":[{"id":"A","name":"Ann"},{"id":"B","name":"Bo","rsvpStatus":"declined"},{"id":"C","name":"Cy"}],
	  "tables":[{"id":"T","capacity":%d}],
	  "options":{"selectedGuestIds":["B","C"]}}`

	events, err := parseEvents(fmt.Sprintf(doc, 2))
	require.NoError(t, err)
	r := runEvent(&events[0], DefaultConfig(), logr.Discard())
	require.Equal(t, seating.Assignment{"B": "T", "C": "T"}, r.Result.Assignment)

	out := FormatResult(&events[0], r.Result)
	assert.NotContains(t, out, "Unseated", "guests outside the selection never took part")
	assert.NotContains(t, out, "Ann")

	events, err = parseEvents(fmt.Sprintf(doc, 1))
	require.NoError(t, err)
	r = runEvent(&events[0], DefaultConfig(), logr.Discard())
	require.Len(t, r.Result.Assignment, 1)

	out = FormatResult(&events[0], r.Result)
	assert.Contains(t, out, "Unseated: ")
	assert.NotContains(t, out, "Ann")
}

func TestWriteResults_JSON(t *testing.T) {
	_, results := weddingResults(t)

	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, "json", results))

	var got []struct {
		ID     string `json:"id"`
		Result struct {
			TotalScore  float64           `json:"totalScore"`
			Assignments map[string]string `json:"assignments"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, 200.0, got[0].Result.TotalScore)
	assert.Equal(t, map[string]string{"A": "T1", "B": "T1"}, got[0].Result.Assignments)
}

func TestWriteResults_YAML(t *testing.T) {
	_, results := weddingResults(t)

	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, "yaml", results))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[1]["id"])
	assert.Contains(t, buf.String(), "totalScore: 200")
}

func TestWriteResults_UnknownFormat(t *testing.T) {
	assert.Error(t, writeResults(&bytes.Buffer{}, "xml", nil))
}

func TestPrintTable(t *testing.T) {
	_, results := weddingResults(t)

	var buf bytes.Buffer
	printTable(&buf, results)
	out := buf.String()
	assert.Contains(t, out, "Event")
	assert.Contains(t, out, "e1")
	assert.Contains(t, out, "e2")
	assert.Contains(t, out, "TOTAL")
}
