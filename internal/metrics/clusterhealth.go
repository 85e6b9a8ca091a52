package metrics

import (
	"github.com/perfbase/baseliner/internal/model"
	"github.com/perfbase/baseliner/internal/stats"
)

// SummarizeClusterHealth condenses the health series into status counts,
// the closing status, and shard averages and extremes.
func SummarizeClusterHealth(data *model.ClusterHealthData) model.ClusterHealthSummary {
	summary := model.ClusterHealthSummary{
		StatusCounts:           make(map[string]int),
		AvgActiveShards:        stats.Average(data.ActiveShards),
		AvgActivePrimaryShards: stats.Average(data.ActivePrimaryShards),
		MaxRelocatingShards:    stats.Max(data.RelocatingShards),
		MaxInitializingShards:  stats.Max(data.InitializingShards),
		MaxUnassignedShards:    stats.Max(data.UnassignedShards),
		MaxPendingTasks:        stats.Max(data.PendingTasks),
	}
	for _, status := range data.Statuses {
		summary.StatusCounts[status]++
	}
	if len(data.Statuses) > 0 {
		summary.FinalStatus = data.Statuses[len(data.Statuses)-1]
	}
	return summary
}
