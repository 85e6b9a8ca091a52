package model

import "time"

// EntitySeries holds the per-entity-kind partition of the transform series.
type EntitySeries struct {
	SearchLatencies     []float64
	IndexLatencies      []float64
	ProcessingLatencies []float64
	DocumentsProcessed  []float64
	DocumentsIndexed    []float64
	PagesProcessed      []float64
	TriggerCounts       []float64
}

// TransformStatsData is the reconstructed time series for the entity-engine
// transforms under test. Latency sequences hold per-interval ms/op values;
// counter sequences hold raw cumulative snapshots, one entry per sample.
type TransformStatsData struct {
	SearchLatencies     []float64
	IndexLatencies      []float64
	ProcessingLatencies []float64

	DocumentsProcessed []float64
	DocumentsIndexed   []float64
	PagesProcessed     []float64
	TriggerCounts      []float64

	SearchFailures int
	IndexFailures  int

	ExponentialAvgCheckpointDurationMs []float64
	ExponentialAvgDocumentsIndexed     []float64
	ExponentialAvgDocumentsProcessed   []float64

	States TransformStateCounts

	PerEntityType map[EntityType]*EntitySeries

	// Timestamps of every matched transform sample, in file order.
	Timestamps []time.Time

	// DetectedIntervalMs is the sampling cadence detected from batch
	// timestamps, in milliseconds. Zero when no transform log was parsed.
	DetectedIntervalMs float64
}

// NewTransformStatsData returns an empty series with every entity-kind
// partition present, so downstream shape never depends on which kinds were
// actually observed.
func NewTransformStatsData() *TransformStatsData {
	perType := make(map[EntityType]*EntitySeries, len(AllEntityTypes()))
	for _, t := range AllEntityTypes() {
		perType[t] = &EntitySeries{}
	}
	return &TransformStatsData{PerEntityType: perType}
}

// NodeStatsData holds point-in-time cluster-node series. Sequences may have
// different lengths when samples omit fields; summarization never assumes
// aligned lengths.
type NodeStatsData struct {
	CPUPercents   []float64
	HeapPercents  []float64
	HeapUsedBytes []float64
	PerNodeCPU    map[string][]float64
}

// NewNodeStatsData returns an empty node series with the per-node map ready.
func NewNodeStatsData() *NodeStatsData {
	return &NodeStatsData{PerNodeCPU: make(map[string][]float64)}
}

// ClusterHealthData holds the cluster-health series.
type ClusterHealthData struct {
	Statuses            []string
	ActiveShards        []float64
	ActivePrimaryShards []float64
	RelocatingShards    []float64
	InitializingShards  []float64
	UnassignedShards    []float64
	PendingTasks        []float64
}

// KibanaStatsData holds the application-server series scraped from the
// Kibana stats endpoint during the run. All series are optional.
type KibanaStatsData struct {
	EventLoopDelays       []float64
	EventLoopUtilizations []float64

	ActiveSockets  []float64
	IdleSockets    []float64
	QueuedRequests []float64

	ResponseTimesAvg []float64
	ResponseTimesMax []float64

	HeapUsedBytes []float64

	RequestTotals      []float64
	RequestDisconnects []float64
	HTTPErrors         []float64

	Load1m  []float64
	Load5m  []float64
	Load15m []float64
}
