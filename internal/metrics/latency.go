package metrics

import "github.com/perfbase/baseliner/internal/model"

// CalculateLatencyMetrics summarizes the three transform latency signals.
func CalculateLatencyMetrics(data *model.TransformStatsData) model.LatencyMetrics {
	return model.LatencyMetrics{
		Search:     ComputePercentileMetrics(data.SearchLatencies),
		Indexing:   ComputePercentileMetrics(data.IndexLatencies),
		Processing: ComputePercentileMetrics(data.ProcessingLatencies),
	}
}
