package metrics

import (
	"github.com/perfbase/baseliner/internal/model"
	"github.com/perfbase/baseliner/internal/stats"
)

// ComputePercentileMetrics summarizes one value sequence. Empty input yields
// the zero structure rather than NaN.
func ComputePercentileMetrics(values []float64) model.PercentileMetrics {
	if len(values) == 0 {
		return model.PercentileMetrics{}
	}
	return model.PercentileMetrics{
		Avg: stats.Average(values),
		P50: stats.Percentile(values, 50),
		P95: stats.Percentile(values, 95),
		P99: stats.Percentile(values, 99),
		Max: stats.Max(values),
	}
}

// computeGauge summarizes the average and peak of a point-in-time series.
func computeGauge(values []float64) model.GaugeMetrics {
	return model.GaugeMetrics{Avg: stats.Average(values), Max: stats.Max(values)}
}

// lastValue returns the final recorded sample, or 0 for an empty series.
func lastValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
