package main

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/montyhall/internal/registry"
	"github.com/vovakirdan/montyhall/internal/trial"
)

func sampleReport() registry.Report {
	return trial.ReportFor(trial.Result{
		Strategy: trial.AlwaysSwitch,
		Doors:    3,
		Trials:   1000,
		Seed:     42,
		Rounds:   1000,
		Wins:     670,
	})
}

func TestRunListShowsRegisteredExperiments(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runList(cmd, nil))
	assert.Contains(t, buf.String(), "montyhall")
	assert.Contains(t, buf.String(), "family")
}

func TestRunRecordFromReport(t *testing.T) {
	rec := runRecord(sampleReport())

	assert.Equal(t, "montyhall", rec.Experiment)
	assert.Equal(t, "always-switch", rec.Strategy)
	assert.Equal(t, 670, rec.Wins)
	assert.Equal(t, int64(42), rec.Seed)
	require.Len(t, rec.Metrics, 1)
	assert.InDelta(t, 0.67, rec.Metrics[0].Value, 1e-9)
	assert.InDelta(t, 2.0/3.0, rec.Metrics[0].Expected, 1e-9)
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, toJSON(sampleReport())))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "montyhall", decoded["experiment"])
	assert.Equal(t, "always-switch", decoded["strategy"])
	assert.EqualValues(t, 670, decoded["counts"].(map[string]any)["wins"])

	metrics := decoded["metrics"].([]any)
	require.Len(t, metrics, 1)
	assert.Equal(t, "P(win)", metrics[0].(map[string]any)["name"])
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, sampleReport())

	out := buf.String()
	assert.Contains(t, out, "Monty Hall - 1000 trials (seed 42)")
	assert.Contains(t, out, "Strategy: always-switch, 3 doors")
	assert.Contains(t, out, "0.6700")
	assert.Contains(t, out, "wins: 670")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "..........", bar(0, 10))
	assert.Equal(t, "#####.....", bar(0.5, 10))
	assert.Equal(t, "##########", bar(1.2, 10))
}
