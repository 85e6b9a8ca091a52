package logparse

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfbase/baseliner/internal/model"
)

func searchStats(total, timeMs float64) map[string]interface{} {
	return map[string]interface{}{
		"search_total":      total,
		"search_time_in_ms": timeMs,
	}
}

func TestParseTransformStatsEmitsIncrementalLatency(t *testing.T) {
	t.Parallel()

	// 8 more searches taking 40 more ms across one interval: 5.0 ms/op.
	path := writeLogFile(t, t.TempDir(), "transform-stats.log",
		transformLine(t, tsAt(0), "host-entity-engine", "indexing", searchStats(100, 500)),
		transformLine(t, tsAt(5000), "host-entity-engine", "indexing", searchStats(108, 540)),
	)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{5.0}, data.SearchLatencies)
	assert.Equal(t, []float64{5.0}, data.PerEntityType[model.EntityTypeHost].SearchLatencies)
	assert.Empty(t, data.PerEntityType[model.EntityTypeUser].SearchLatencies)
	assert.Equal(t, 5000.0, data.DetectedIntervalMs)
	assert.Len(t, data.Timestamps, 2)
}

func TestParseTransformStatsThresholdGating(t *testing.T) {
	t.Parallel()

	// Only 3 more searches: below the minimum increment of 5, dropped.
	path := writeLogFile(t, t.TempDir(), "transform-stats.log",
		transformLine(t, tsAt(0), "host-entity-engine", "indexing", searchStats(100, 500)),
		transformLine(t, tsAt(5000), "host-entity-engine", "indexing", searchStats(103, 540)),
	)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	assert.Empty(t, data.SearchLatencies)
	assert.Empty(t, data.PerEntityType[model.EntityTypeHost].SearchLatencies)
}

func TestParseTransformStatsRejectsBackwardsTimeDelta(t *testing.T) {
	t.Parallel()

	path := writeLogFile(t, t.TempDir(), "transform-stats.log",
		transformLine(t, tsAt(0), "host-entity-engine", "indexing", searchStats(100, 500)),
		transformLine(t, tsAt(5000), "host-entity-engine", "indexing", searchStats(110, 480)),
	)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	assert.Empty(t, data.SearchLatencies)
}

func TestParseTransformStatsScalesThresholdToCadence(t *testing.T) {
	t.Parallel()

	// At a 1 s cadence the multiplier is 0.2, so the search threshold drops
	// to max(1, floor(5*0.2)) = 1 and a 2-op increment is accepted.
	path := writeLogFile(t, t.TempDir(), "transform-stats.log",
		transformLine(t, tsAt(0), "host-entity-engine", "indexing", searchStats(100, 500)),
		transformLine(t, tsAt(1000), "host-entity-engine", "indexing", searchStats(102, 504)),
		transformLine(t, tsAt(2000), "host-entity-engine", "indexing", searchStats(104, 508)),
		transformLine(t, tsAt(3000), "host-entity-engine", "indexing", searchStats(106, 512)),
	)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, data.DetectedIntervalMs)
	assert.Equal(t, []float64{2.0, 2.0, 2.0}, data.SearchLatencies)
}

func TestParseTransformStatsDeduplicatesSamplingBatches(t *testing.T) {
	t.Parallel()

	// Two transforms logged 50 ms apart each tick form one batch, so the
	// detected cadence is the tick spacing, not the intra-batch gap.
	var lines []string
	for _, tick := range []int{0, 5000, 10000} {
		lines = append(lines,
			transformLine(t, tsAt(tick), "host-a", "indexing", searchStats(float64(100+tick), float64(500+tick))),
			transformLine(t, tsAt(tick+50), "user-b", "indexing", searchStats(float64(200+tick), float64(700+tick))),
		)
	}
	path := writeLogFile(t, t.TempDir(), "transform-stats.log", lines...)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, data.DetectedIntervalMs)

	// Each transform differences against its own previous snapshot.
	assert.Len(t, data.SearchLatencies, 4)
	assert.Len(t, data.PerEntityType[model.EntityTypeHost].SearchLatencies, 2)
	assert.Len(t, data.PerEntityType[model.EntityTypeUser].SearchLatencies, 2)
	assert.Equal(t, []float64{1.0, 1.0}, data.PerEntityType[model.EntityTypeHost].SearchLatencies)
}

func TestParseTransformStatsRecordsCumulativeSnapshots(t *testing.T) {
	t.Parallel()

	path := writeLogFile(t, t.TempDir(), "transform-stats.log",
		transformLine(t, tsAt(0), "service-entity-engine", "indexing", map[string]interface{}{
			"documents_processed": 100.0,
			"documents_indexed":   80.0,
			"pages_processed":     10.0,
			"trigger_count":       1.0,
		}),
		transformLine(t, tsAt(5000), "service-entity-engine", "indexing", map[string]interface{}{
			"documents_processed": 250.0,
			"documents_indexed":   200.0,
			"pages_processed":     25.0,
			"trigger_count":       2.0,
		}),
	)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	// Snapshots are recorded raw, first observation included.
	assert.Equal(t, []float64{100, 250}, data.DocumentsProcessed)
	assert.Equal(t, []float64{80, 200}, data.DocumentsIndexed)
	assert.Equal(t, []float64{10, 25}, data.PagesProcessed)
	assert.Equal(t, []float64{1, 2}, data.TriggerCounts)
	assert.Equal(t, []float64{100, 250}, data.PerEntityType[model.EntityTypeService].DocumentsProcessed)
}

func TestParseTransformStatsStateCensusAndFailures(t *testing.T) {
	t.Parallel()

	path := writeLogFile(t, t.TempDir(), "transform-stats.log",
		transformLine(t, tsAt(0), "host-a", "started", map[string]interface{}{"search_failures": 1.0, "index_failures": 0.0}),
		transformLine(t, tsAt(5000), "host-a", "indexing", map[string]interface{}{"search_failures": 2.0, "index_failures": 1.0}),
		transformLine(t, tsAt(5050), "user-b", "indexing", map[string]interface{}{"search_failures": 3.0, "index_failures": 4.0}),
	)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	assert.Equal(t, 1, data.States.Started)
	assert.Equal(t, 2, data.States.Indexing)

	// Failures are the last seen value per transform, summed across them.
	assert.Equal(t, 5, data.SearchFailures)
	assert.Equal(t, 5, data.IndexFailures)
}

func TestParseTransformStatsFiltersZeroExponentialAverages(t *testing.T) {
	t.Parallel()

	path := writeLogFile(t, t.TempDir(), "transform-stats.log",
		transformLine(t, tsAt(0), "generic-engine", "indexing", map[string]interface{}{
			"exponential_avg_checkpoint_duration_ms": 0.0,
			"exponential_avg_documents_indexed":      0.0,
			"exponential_avg_documents_processed":    50.0,
		}),
		transformLine(t, tsAt(5000), "generic-engine", "indexing", map[string]interface{}{
			"exponential_avg_checkpoint_duration_ms": 12.5,
			"exponential_avg_documents_indexed":      40.0,
			"exponential_avg_documents_processed":    55.0,
		}),
	)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{12.5}, data.ExponentialAvgCheckpointDurationMs)
	assert.Equal(t, []float64{40.0}, data.ExponentialAvgDocumentsIndexed)
	assert.Equal(t, []float64{50.0, 55.0}, data.ExponentialAvgDocumentsProcessed)
}

func TestParseTransformStatsSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	path := writeLogFile(t, t.TempDir(), "transform-stats.log",
		"benchmark warmup complete",
		transformLine(t, tsAt(0), "host-entity-engine", "indexing", searchStats(100, 500)),
		tsAt(2500)+" - Transform host-entity-engine stats: {not json",
		tsAt(2600)+` - {"status":"green"}`,
		transformLine(t, tsAt(5000), "host-entity-engine", "indexing", searchStats(108, 540)),
	)

	data, err := ParseTransformStats(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{5.0}, data.SearchLatencies)
	assert.Len(t, data.Timestamps, 2)
}

func TestParseTransformStatsMissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "absent.log")
	_, err := ParseTransformStats(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}
