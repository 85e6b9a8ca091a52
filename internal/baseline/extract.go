package baseline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/perfbase/baseliner/internal/logparse"
	"github.com/perfbase/baseliner/internal/metrics"
	"github.com/perfbase/baseliner/internal/model"
)

// Extract runs the whole pipeline for one test run: locate the run's log
// files under logsDir, parse them, summarize, and assemble the baseline.
// Cluster-health and node-stats logs are required. Transform-stats and
// kibana-stats are optional because some runs intentionally omit the entity
// engine or Kibana; their sections come out zeroed instead of failing.
func Extract(logsDir, logPrefix string, cfg model.TestConfig) (*model.BaselineMetrics, error) {
	healthPath, err := requireLogFile(logsDir, logPrefix, model.MarkerClusterHealth)
	if err != nil {
		return nil, err
	}
	nodePath, err := requireLogFile(logsDir, logPrefix, model.MarkerNodeStats)
	if err != nil {
		return nil, err
	}
	transformPath, err := findLogFile(logsDir, logPrefix, model.MarkerTransformStats)
	if err != nil {
		return nil, err
	}
	kibanaPath, err := findLogFile(logsDir, logPrefix, model.MarkerKibanaStats)
	if err != nil {
		return nil, err
	}

	health, err := logparse.ParseClusterHealth(healthPath)
	if err != nil {
		return nil, err
	}
	nodes, err := logparse.ParseNodeStats(nodePath)
	if err != nil {
		return nil, err
	}

	transforms := model.NewTransformStatsData()
	if transformPath != "" {
		if transforms, err = logparse.ParseTransformStats(transformPath); err != nil {
			return nil, err
		}
	} else {
		log.WithField("prefix", logPrefix).Debug("no transform-stats log, entity metrics will be zero")
	}

	kibana := &model.KibanaStatsData{}
	if kibanaPath != "" {
		if kibana, err = logparse.ParseKibanaStats(kibanaPath); err != nil {
			return nil, err
		}
	}

	// Entity metrics come first: the system totals derive from the
	// per-kind counter maxima.
	entity := metrics.CalculateEntityMetrics(transforms)

	b := &model.BaselineMetrics{
		TestName:   logPrefix,
		Timestamp:  time.Now().UTC(),
		TestConfig: cfg,
		Metrics: model.MetricsBundle{
			Latency:         metrics.CalculateLatencyMetrics(transforms),
			System:          metrics.CalculateSystemMetrics(nodes, transforms, entity),
			PerEntityType:   entity,
			TransformStates: transforms.States,
			Errors: model.ErrorTotals{
				SearchFailures: transforms.SearchFailures,
				IndexFailures:  transforms.IndexFailures,
			},
			ClusterHealth: metrics.SummarizeClusterHealth(health),
			Kibana:        metrics.CalculateKibanaMetrics(kibana),
		},
	}

	log.WithFields(log.Fields{
		"prefix":          logPrefix,
		"latency_samples": len(transforms.SearchLatencies),
		"interval_ms":     transforms.DetectedIntervalMs,
	}).Info("extracted baseline")
	return b, nil
}

// requireLogFile is findLogFile for the kinds a run cannot be baselined
// without.
func requireLogFile(logsDir, logPrefix, marker string) (string, error) {
	path, err := findLogFile(logsDir, logPrefix, marker)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.Errorf("no %s log for prefix %q in %s", marker, logPrefix, logsDir)
	}
	return path, nil
}

// findLogFile locates the run's log file for one kind marker: filename
// starts with the run prefix and contains the marker. With several
// candidates the lexically first wins, keeping extraction deterministic.
// An empty path means the kind is absent.
func findLogFile(logsDir, logPrefix, marker string) (string, error) {
	entries, err := os.ReadDir(logsDir)
	if err != nil {
		return "", errors.Wrapf(err, "read logs dir %s", logsDir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, logPrefix) && strings.Contains(name, marker) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(logsDir, names[0]), nil
}
