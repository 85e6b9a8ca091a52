package metrics

import (
	"github.com/perfbase/baseliner/internal/model"
	"github.com/perfbase/baseliner/internal/stats"
)

// CalculateEntityMetrics summarizes each entity kind. The counter sequences
// hold cumulative snapshots, so a counter's final state is its maximum;
// summing snapshots would double count. Every kind is present in the result
// even when it saw no samples.
func CalculateEntityMetrics(data *model.TransformStatsData) map[model.EntityType]model.EntityTypeMetrics {
	out := make(map[model.EntityType]model.EntityTypeMetrics, len(model.AllEntityTypes()))
	for _, kind := range model.AllEntityTypes() {
		series := data.PerEntityType[kind]
		if series == nil {
			series = &model.EntitySeries{}
		}
		out[kind] = model.EntityTypeMetrics{
			SearchLatency:      ComputePercentileMetrics(series.SearchLatencies),
			IndexLatency:       ComputePercentileMetrics(series.IndexLatencies),
			ProcessingLatency:  ComputePercentileMetrics(series.ProcessingLatencies),
			DocumentsProcessed: stats.Max(series.DocumentsProcessed),
			DocumentsIndexed:   stats.Max(series.DocumentsIndexed),
			PagesProcessed:     stats.Max(series.PagesProcessed),
			TriggerCount:       stats.Max(series.TriggerCounts),
		}
	}
	return out
}
