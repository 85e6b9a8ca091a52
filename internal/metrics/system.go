package metrics

import (
	"time"

	"github.com/perfbase/baseliner/internal/model"
	"github.com/perfbase/baseliner/internal/stats"
)

// CalculateSystemMetrics derives cluster resource usage from the node series
// and pipeline throughput from the transform counters. Totals come from the
// per-entity counter maxima, which is why entity metrics are computed before
// system metrics.
func CalculateSystemMetrics(nodes *model.NodeStatsData, transforms *model.TransformStatsData, entity map[model.EntityType]model.EntityTypeMetrics) model.SystemMetrics {
	m := model.SystemMetrics{
		AvgCPUPercent:      stats.Average(nodes.CPUPercents),
		MaxCPUPercent:      stats.Max(nodes.CPUPercents),
		AvgHeapPercent:     stats.Average(nodes.HeapPercents),
		MaxHeapPercent:     stats.Max(nodes.HeapPercents),
		AvgHeapUsedBytes:   stats.Average(nodes.HeapUsedBytes),
		MaxHeapUsedBytes:   stats.Max(nodes.HeapUsedBytes),
		PerNodeCPU:         make(map[string]model.GaugeMetrics, len(nodes.PerNodeCPU)),
		SamplingIntervalMs: transforms.DetectedIntervalMs,
	}
	for name, series := range nodes.PerNodeCPU {
		m.PerNodeCPU[name] = computeGauge(series)
	}

	for _, kind := range model.AllEntityTypes() {
		em := entity[kind]
		m.TotalDocumentsProcessed += em.DocumentsProcessed
		m.TotalDocumentsIndexed += em.DocumentsIndexed
		m.TotalPagesProcessed += em.PagesProcessed
		m.TotalTriggerCount += em.TriggerCount
	}

	m.ThroughputDocsPerSec = stats.SafeDivide(m.TotalDocumentsProcessed, timeSpanSeconds(transforms.Timestamps))
	m.IndexEfficiency = stats.SafeDivide(m.TotalDocumentsIndexed, m.TotalDocumentsProcessed)

	// The vendor's own smoothed estimate at test end.
	m.ExponentialAvgCheckpointDurationMs = lastValue(transforms.ExponentialAvgCheckpointDurationMs)
	m.ExponentialAvgDocumentsIndexed = lastValue(transforms.ExponentialAvgDocumentsIndexed)
	m.ExponentialAvgDocumentsProcessed = lastValue(transforms.ExponentialAvgDocumentsProcessed)

	return m
}

// timeSpanSeconds is the wall-clock span covered by the transform samples.
func timeSpanSeconds(timestamps []time.Time) float64 {
	if len(timestamps) < 2 {
		return 0
	}
	earliest, latest := timestamps[0], timestamps[0]
	for _, ts := range timestamps[1:] {
		if ts.Before(earliest) {
			earliest = ts
		}
		if ts.After(latest) {
			latest = ts
		}
	}
	return latest.Sub(earliest).Seconds()
}
