package model

// Log-file kind markers. A run's files are discovered by prefix plus one of
// these substrings in the filename.
const (
	MarkerClusterHealth  = "cluster-health"
	MarkerNodeStats      = "node-stats"
	MarkerTransformStats = "transform-stats"
	MarkerKibanaStats    = "kibana-stats"
)

// Shared defaults used by both the library and the CLI.
const (
	DefaultLogsDir      = "logs"
	DefaultBaselinesDir = "data/baselines"
)
