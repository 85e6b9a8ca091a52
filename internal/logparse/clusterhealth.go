package logparse

import (
	log "github.com/sirupsen/logrus"

	"github.com/perfbase/baseliner/internal/model"
)

// ParseClusterHealth reads a cluster-health log into its time series. The
// payload is the Elasticsearch _cluster/health body. Lines failing the
// grammar or JSON parse are skipped without comment.
func ParseClusterHealth(path string) (*model.ClusterHealthData, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	data := &model.ClusterHealthData{}
	for _, line := range lines {
		sample, ok := SplitLine(line)
		if !ok {
			continue
		}
		raw := parseJSONObject(sample.Body)
		if raw == nil {
			continue
		}

		if status := stringField(raw, "status"); status != "" {
			data.Statuses = append(data.Statuses, status)
		}
		data.ActiveShards = appendNumber(data.ActiveShards, raw, "active_shards")
		data.ActivePrimaryShards = appendNumber(data.ActivePrimaryShards, raw, "active_primary_shards")
		data.RelocatingShards = appendNumber(data.RelocatingShards, raw, "relocating_shards")
		data.InitializingShards = appendNumber(data.InitializingShards, raw, "initializing_shards")
		data.UnassignedShards = appendNumber(data.UnassignedShards, raw, "unassigned_shards")
		data.PendingTasks = appendNumber(data.PendingTasks, raw, "number_of_pending_tasks")
	}

	log.WithFields(log.Fields{"file": path, "samples": len(data.Statuses)}).Debug("parsed cluster-health log")
	return data, nil
}
