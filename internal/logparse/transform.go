package logparse

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/perfbase/baseliner/internal/model"
	"github.com/perfbase/baseliner/internal/stats"
)

const (
	// referenceIntervalMs is the sampling cadence the base thresholds were
	// tuned for.
	referenceIntervalMs = 5000.0

	// batchToleranceMs groups transform lines logged within this window of
	// a batch start into that batch.
	batchToleranceMs = 100.0

	// maxIntervalMs discards inter-batch gaps above this bound (paused or
	// restarted runs) when detecting the sampling cadence.
	maxIntervalMs = 300_000.0
)

// Base minimum-increment thresholds at the reference cadence. An interval
// delta only yields a latency sample once the op-count increment reaches the
// scaled threshold, which keeps small increments from amplifying noise into
// wild ms/op values.
const (
	baseSearchThreshold     = 5.0
	baseIndexThreshold      = 10.0
	baseProcessingThreshold = 5.0
)

// prevCounters is the last seen cumulative counter snapshot for one
// transform id.
type prevCounters struct {
	searchTime      float64
	searchTotal     float64
	indexTime       float64
	indexTotal      float64
	processingTime  float64
	processingTotal float64
}

// ParseTransformStats reads a transform-stats log into TransformStatsData,
// reconstructing per-interval latencies from the cumulative counters the
// transforms report.
//
// The parse runs in two passes. The first pass de-duplicates line timestamps
// into sampling batches and detects the cadence, which scales the minimum
// increment thresholds. The second pass walks the lines in order keeping a
// previous-snapshot record per transform id: the first observation of an id
// only seeds that record, and each later observation is differenced against
// it to produce incremental time and op-count. A latency sample
// incrementalTime/incrementalTotal is accepted only when the op increment
// reaches the threshold and the time increment is non-negative; rejected
// deltas are dropped, never carried forward or interpolated.
func ParseTransformStats(path string) (*model.TransformStatsData, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	data := model.NewTransformStatsData()
	data.DetectedIntervalMs = detectSamplingInterval(lines)

	multiplier := data.DetectedIntervalMs / referenceIntervalMs
	searchThreshold := scaleThreshold(baseSearchThreshold, multiplier)
	indexThreshold := scaleThreshold(baseIndexThreshold, multiplier)
	processingThreshold := scaleThreshold(baseProcessingThreshold, multiplier)

	prev := make(map[string]prevCounters)
	lastSearchFailures := make(map[string]float64)
	lastIndexFailures := make(map[string]float64)

	for _, line := range lines {
		sample, ok := SplitTransformLine(line)
		if !ok {
			continue
		}
		raw := parseJSONObject(sample.Body)
		if raw == nil {
			continue
		}
		transform := firstTransform(raw)
		if transform == nil {
			continue
		}

		data.Timestamps = append(data.Timestamps, sample.Timestamp)

		switch stringField(transform, "state") {
		case "started":
			data.States.Started++
		case "indexing":
			data.States.Indexing++
		}

		st := objectField(transform, "stats")
		if st == nil {
			continue
		}

		entity := data.PerEntityType[model.InferEntityType(sample.TransformID)]

		// Cumulative counters are recorded as raw snapshots; the
		// calculators take MAX over these, not SUM.
		if v, ok := numberField(st, "documents_processed"); ok {
			data.DocumentsProcessed = append(data.DocumentsProcessed, v)
			entity.DocumentsProcessed = append(entity.DocumentsProcessed, v)
		}
		if v, ok := numberField(st, "documents_indexed"); ok {
			data.DocumentsIndexed = append(data.DocumentsIndexed, v)
			entity.DocumentsIndexed = append(entity.DocumentsIndexed, v)
		}
		if v, ok := numberField(st, "pages_processed"); ok {
			data.PagesProcessed = append(data.PagesProcessed, v)
			entity.PagesProcessed = append(entity.PagesProcessed, v)
		}
		if v, ok := numberField(st, "trigger_count"); ok {
			data.TriggerCounts = append(data.TriggerCounts, v)
			entity.TriggerCounts = append(entity.TriggerCounts, v)
		}

		// Vendor-smoothed averages are kept verbatim; exact zeros are
		// placeholders from transforms that have not checkpointed yet.
		if v, ok := numberField(st, "exponential_avg_checkpoint_duration_ms"); ok && v != 0 {
			data.ExponentialAvgCheckpointDurationMs = append(data.ExponentialAvgCheckpointDurationMs, v)
		}
		if v, ok := numberField(st, "exponential_avg_documents_indexed"); ok && v != 0 {
			data.ExponentialAvgDocumentsIndexed = append(data.ExponentialAvgDocumentsIndexed, v)
		}
		if v, ok := numberField(st, "exponential_avg_documents_processed"); ok && v != 0 {
			data.ExponentialAvgDocumentsProcessed = append(data.ExponentialAvgDocumentsProcessed, v)
		}

		if v, ok := numberField(st, "search_failures"); ok {
			lastSearchFailures[sample.TransformID] = v
		}
		if v, ok := numberField(st, "index_failures"); ok {
			lastIndexFailures[sample.TransformID] = v
		}

		cur := prevCounters{
			searchTime:      numberOr(st, "search_time_in_ms", 0),
			searchTotal:     numberOr(st, "search_total", 0),
			indexTime:       numberOr(st, "index_time_in_ms", 0),
			indexTotal:      numberOr(st, "index_total", 0),
			processingTime:  numberOr(st, "processing_time_in_ms", 0),
			processingTotal: numberOr(st, "processing_total", 0),
		}

		p, seen := prev[sample.TransformID]
		prev[sample.TransformID] = cur
		if !seen {
			// First observation of this transform: no delta yet.
			continue
		}

		if lat, ok := incrementalLatency(cur.searchTime, p.searchTime, cur.searchTotal, p.searchTotal, searchThreshold); ok {
			data.SearchLatencies = append(data.SearchLatencies, lat)
			entity.SearchLatencies = append(entity.SearchLatencies, lat)
		}
		if lat, ok := incrementalLatency(cur.indexTime, p.indexTime, cur.indexTotal, p.indexTotal, indexThreshold); ok {
			data.IndexLatencies = append(data.IndexLatencies, lat)
			entity.IndexLatencies = append(entity.IndexLatencies, lat)
		}
		if lat, ok := incrementalLatency(cur.processingTime, p.processingTime, cur.processingTotal, p.processingTotal, processingThreshold); ok {
			data.ProcessingLatencies = append(data.ProcessingLatencies, lat)
			entity.ProcessingLatencies = append(entity.ProcessingLatencies, lat)
		}
	}

	data.SearchFailures = int(sumValues(lastSearchFailures))
	data.IndexFailures = int(sumValues(lastIndexFailures))

	log.WithFields(log.Fields{
		"file":        path,
		"samples":     len(data.Timestamps),
		"transforms":  len(prev),
		"interval_ms": data.DetectedIntervalMs,
	}).Debug("parsed transform-stats log")
	return data, nil
}

// detectSamplingInterval returns the median inter-batch gap in milliseconds.
// Multiple transforms are logged back to back each sampling tick, so
// timestamps within batchToleranceMs of a batch start collapse into that
// batch. Gaps outside (0, maxIntervalMs] are discarded as outliers; with
// fewer than two usable gaps the reference cadence is assumed.
func detectSamplingInterval(lines []string) float64 {
	var batchTimes []time.Time
	for _, line := range lines {
		sample, ok := SplitTransformLine(line)
		if !ok {
			continue
		}
		if len(batchTimes) == 0 {
			batchTimes = append(batchTimes, sample.Timestamp)
			continue
		}
		gap := sample.Timestamp.Sub(batchTimes[len(batchTimes)-1])
		if math.Abs(float64(gap.Milliseconds())) > batchToleranceMs {
			batchTimes = append(batchTimes, sample.Timestamp)
		}
	}

	var intervals []float64
	for i := 1; i < len(batchTimes); i++ {
		ms := float64(batchTimes[i].Sub(batchTimes[i-1]).Milliseconds())
		if ms > 0 && ms <= maxIntervalMs {
			intervals = append(intervals, ms)
		}
	}
	if len(intervals) < 2 {
		return referenceIntervalMs
	}
	return stats.Median(intervals)
}

// scaleThreshold adapts a base increment threshold to the detected cadence,
// keeping a floor of one operation.
func scaleThreshold(base, multiplier float64) float64 {
	return math.Max(1, math.Floor(base*multiplier))
}

// incrementalLatency differences two cumulative snapshots into a ms/op
// latency sample. Sub-threshold or backwards deltas are rejected.
func incrementalLatency(curTime, prevTime, curTotal, prevTotal, threshold float64) (float64, bool) {
	incTime := curTime - prevTime
	incTotal := curTotal - prevTotal
	if incTotal < threshold || incTime < 0 {
		return 0, false
	}
	return incTime / incTotal, true
}

// firstTransform returns the first entry of the payload's transforms array.
func firstTransform(raw map[string]interface{}) map[string]interface{} {
	arr, ok := raw["transforms"].([]interface{})
	if !ok || len(arr) == 0 {
		return nil
	}
	first, ok := arr[0].(map[string]interface{})
	if !ok {
		return nil
	}
	return first
}

func sumValues(byTransform map[string]float64) float64 {
	var total float64
	for _, v := range byTransform {
		total += v
	}
	return total
}
