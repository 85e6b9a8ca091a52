package metrics

import (
	"github.com/perfbase/baseliner/internal/model"
	"github.com/perfbase/baseliner/internal/stats"
)

// CalculateKibanaMetrics summarizes the application-server series. A run
// that produced no Kibana stats log yields the zero structure.
func CalculateKibanaMetrics(data *model.KibanaStatsData) model.KibanaMetrics {
	totalRequests := stats.Sum(data.RequestTotals)
	return model.KibanaMetrics{
		EventLoopDelay:       ComputePercentileMetrics(data.EventLoopDelays),
		EventLoopUtilization: computeGauge(data.EventLoopUtilizations),
		ESClient: model.ESClientMetrics{
			AvgActiveSockets:  stats.Average(data.ActiveSockets),
			MaxActiveSockets:  stats.Max(data.ActiveSockets),
			AvgIdleSockets:    stats.Average(data.IdleSockets),
			MaxQueuedRequests: stats.Max(data.QueuedRequests),
		},
		ResponseTimes: model.ResponseTimeMetrics{
			Avg: stats.Average(data.ResponseTimesAvg),
			P95: stats.Percentile(data.ResponseTimesAvg, 95),
			Max: stats.Max(data.ResponseTimesMax),
		},
		HeapUsedBytes: computeGauge(data.HeapUsedBytes),
		Requests: model.RequestMetrics{
			Total:            totalRequests,
			Disconnects:      stats.Sum(data.RequestDisconnects),
			ErrorRatePercent: stats.SafeDivide(stats.Sum(data.HTTPErrors), totalRequests) * 100,
		},
		OSLoad: model.OSLoadMetrics{
			Load1m:  computeGauge(data.Load1m),
			Load5m:  computeGauge(data.Load5m),
			Load15m: computeGauge(data.Load15m),
		},
	}
}
