package model

import "time"

// PercentileMetrics summarizes one value sequence. It is the universal
// summarization unit used throughout the baseline record.
type PercentileMetrics struct {
	Avg float64 `json:"avg" yaml:"avg"`
	P50 float64 `json:"p50" yaml:"p50"`
	P95 float64 `json:"p95" yaml:"p95"`
	P99 float64 `json:"p99" yaml:"p99"`
	Max float64 `json:"max" yaml:"max"`
}

// GaugeMetrics summarizes a point-in-time series where only the average and
// peak are interesting.
type GaugeMetrics struct {
	Avg float64 `json:"avg" yaml:"avg"`
	Max float64 `json:"max" yaml:"max"`
}

// LatencyMetrics holds percentile summaries for the three transform
// latency signals (ms per operation).
type LatencyMetrics struct {
	Search     PercentileMetrics `json:"search" yaml:"search"`
	Indexing   PercentileMetrics `json:"indexing" yaml:"indexing"`
	Processing PercentileMetrics `json:"processing" yaml:"processing"`
}

// EntityTypeMetrics summarizes one logical entity kind. Counter fields hold
// the maximum observed cumulative snapshot, which is the final state of the
// counter, not a sum over samples.
type EntityTypeMetrics struct {
	SearchLatency      PercentileMetrics `json:"searchLatency" yaml:"searchLatency"`
	IndexLatency       PercentileMetrics `json:"indexLatency" yaml:"indexLatency"`
	ProcessingLatency  PercentileMetrics `json:"processingLatency" yaml:"processingLatency"`
	DocumentsProcessed float64           `json:"documentsProcessed" yaml:"documentsProcessed"`
	DocumentsIndexed   float64           `json:"documentsIndexed" yaml:"documentsIndexed"`
	PagesProcessed     float64           `json:"pagesProcessed" yaml:"pagesProcessed"`
	TriggerCount       float64           `json:"triggerCount" yaml:"triggerCount"`
}

// SystemMetrics holds cluster resource usage and pipeline throughput derived
// from node stats and transform counters.
type SystemMetrics struct {
	AvgCPUPercent    float64                 `json:"avgCpuPercent" yaml:"avgCpuPercent"`
	MaxCPUPercent    float64                 `json:"maxCpuPercent" yaml:"maxCpuPercent"`
	AvgHeapPercent   float64                 `json:"avgHeapPercent" yaml:"avgHeapPercent"`
	MaxHeapPercent   float64                 `json:"maxHeapPercent" yaml:"maxHeapPercent"`
	AvgHeapUsedBytes float64                 `json:"avgHeapUsedBytes" yaml:"avgHeapUsedBytes"`
	MaxHeapUsedBytes float64                 `json:"maxHeapUsedBytes" yaml:"maxHeapUsedBytes"`
	PerNodeCPU       map[string]GaugeMetrics `json:"perNodeCpu" yaml:"perNodeCpu"`

	ThroughputDocsPerSec    float64 `json:"throughputDocsPerSec" yaml:"throughputDocsPerSec"`
	IndexEfficiency         float64 `json:"indexEfficiency" yaml:"indexEfficiency"`
	TotalDocumentsProcessed float64 `json:"totalDocumentsProcessed" yaml:"totalDocumentsProcessed"`
	TotalDocumentsIndexed   float64 `json:"totalDocumentsIndexed" yaml:"totalDocumentsIndexed"`
	TotalPagesProcessed     float64 `json:"totalPagesProcessed" yaml:"totalPagesProcessed"`
	TotalTriggerCount       float64 `json:"totalTriggerCount" yaml:"totalTriggerCount"`
	SamplingIntervalMs      float64 `json:"samplingIntervalMs" yaml:"samplingIntervalMs"`

	ExponentialAvgCheckpointDurationMs float64 `json:"exponentialAvgCheckpointDurationMs" yaml:"exponentialAvgCheckpointDurationMs"`
	ExponentialAvgDocumentsIndexed     float64 `json:"exponentialAvgDocumentsIndexed" yaml:"exponentialAvgDocumentsIndexed"`
	ExponentialAvgDocumentsProcessed   float64 `json:"exponentialAvgDocumentsProcessed" yaml:"exponentialAvgDocumentsProcessed"`
}

// TransformStateCounts is a coarse census of observed transform states across
// all samples, not a state machine over time.
type TransformStateCounts struct {
	Started  int `json:"started" yaml:"started"`
	Indexing int `json:"indexing" yaml:"indexing"`
}

// ErrorTotals holds cumulative failure counts reported by the transforms.
type ErrorTotals struct {
	SearchFailures int `json:"searchFailures" yaml:"searchFailures"`
	IndexFailures  int `json:"indexFailures" yaml:"indexFailures"`
}

// ClusterHealthSummary condenses the cluster-health series.
type ClusterHealthSummary struct {
	StatusCounts           map[string]int `json:"statusCounts" yaml:"statusCounts"`
	FinalStatus            string         `json:"finalStatus" yaml:"finalStatus"`
	AvgActiveShards        float64        `json:"avgActiveShards" yaml:"avgActiveShards"`
	AvgActivePrimaryShards float64        `json:"avgActivePrimaryShards" yaml:"avgActivePrimaryShards"`
	MaxRelocatingShards    float64        `json:"maxRelocatingShards" yaml:"maxRelocatingShards"`
	MaxInitializingShards  float64        `json:"maxInitializingShards" yaml:"maxInitializingShards"`
	MaxUnassignedShards    float64        `json:"maxUnassignedShards" yaml:"maxUnassignedShards"`
	MaxPendingTasks        float64        `json:"maxPendingTasks" yaml:"maxPendingTasks"`
}

// ESClientMetrics summarizes the Kibana-side Elasticsearch client pools.
type ESClientMetrics struct {
	AvgActiveSockets  float64 `json:"avgActiveSockets" yaml:"avgActiveSockets"`
	MaxActiveSockets  float64 `json:"maxActiveSockets" yaml:"maxActiveSockets"`
	AvgIdleSockets    float64 `json:"avgIdleSockets" yaml:"avgIdleSockets"`
	MaxQueuedRequests float64 `json:"maxQueuedRequests" yaml:"maxQueuedRequests"`
}

// ResponseTimeMetrics summarizes Kibana HTTP response times (ms).
type ResponseTimeMetrics struct {
	Avg float64 `json:"avg" yaml:"avg"`
	P95 float64 `json:"p95" yaml:"p95"`
	Max float64 `json:"max" yaml:"max"`
}

// RequestMetrics totals Kibana HTTP traffic over the whole run.
type RequestMetrics struct {
	Total            float64 `json:"total" yaml:"total"`
	Disconnects      float64 `json:"disconnects" yaml:"disconnects"`
	ErrorRatePercent float64 `json:"errorRatePercent" yaml:"errorRatePercent"`
}

// OSLoadMetrics summarizes the host load averages reported by Kibana.
type OSLoadMetrics struct {
	Load1m  GaugeMetrics `json:"load1m" yaml:"load1m"`
	Load5m  GaugeMetrics `json:"load5m" yaml:"load5m"`
	Load15m GaugeMetrics `json:"load15m" yaml:"load15m"`
}

// KibanaMetrics holds the application-server summary. All fields are zero
// when the run produced no Kibana stats log.
type KibanaMetrics struct {
	EventLoopDelay       PercentileMetrics   `json:"eventLoopDelay" yaml:"eventLoopDelay"`
	EventLoopUtilization GaugeMetrics        `json:"eventLoopUtilization" yaml:"eventLoopUtilization"`
	ESClient             ESClientMetrics     `json:"esClient" yaml:"esClient"`
	ResponseTimes        ResponseTimeMetrics `json:"responseTimes" yaml:"responseTimes"`
	HeapUsedBytes        GaugeMetrics        `json:"heapUsedBytes" yaml:"heapUsedBytes"`
	Requests             RequestMetrics      `json:"requests" yaml:"requests"`
	OSLoad               OSLoadMetrics       `json:"osLoad" yaml:"osLoad"`
}

// MetricsBundle is the metric body of a baseline record.
type MetricsBundle struct {
	Latency         LatencyMetrics                   `json:"latency" yaml:"latency"`
	System          SystemMetrics                    `json:"system" yaml:"system"`
	PerEntityType   map[EntityType]EntityTypeMetrics `json:"perEntityType" yaml:"perEntityType"`
	TransformStates TransformStateCounts             `json:"transformStates" yaml:"transformStates"`
	Errors          ErrorTotals                      `json:"errors" yaml:"errors"`
	ClusterHealth   ClusterHealthSummary             `json:"clusterHealth" yaml:"clusterHealth"`
	Kibana          KibanaMetrics                    `json:"kibana" yaml:"kibana"`
}

// TestConfig carries the run parameters supplied by the caller. It is stored
// verbatim so baselines from differently sized runs are never compared blind.
type TestConfig struct {
	EntityCount   int `json:"entityCount" yaml:"entityCount"`
	LogsPerEntity int `json:"logsPerEntity" yaml:"logsPerEntity"`
}

// BaselineMetrics is the terminal, persisted artifact of one extraction run.
// A baseline is immutable once created and identified by TestName + Timestamp.
type BaselineMetrics struct {
	TestName   string        `json:"testName" yaml:"testName"`
	Timestamp  time.Time     `json:"timestamp" yaml:"timestamp"`
	TestConfig TestConfig    `json:"testConfig" yaml:"testConfig"`
	Metrics    MetricsBundle `json:"metrics" yaml:"metrics"`
}
