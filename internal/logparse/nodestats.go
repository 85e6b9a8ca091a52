package logparse

import (
	log "github.com/sirupsen/logrus"

	"github.com/perfbase/baseliner/internal/model"
)

// ParseNodeStats reads a node-stats digest log into its time series. Each
// payload carries cluster-wide cpu/heap readings plus a nodes map of
// per-node CPU, so node-level hot spots stay distinguishable from the
// cluster average.
func ParseNodeStats(path string) (*model.NodeStatsData, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	data := model.NewNodeStatsData()
	for _, line := range lines {
		sample, ok := SplitLine(line)
		if !ok {
			continue
		}
		raw := parseJSONObject(sample.Body)
		if raw == nil {
			continue
		}

		data.CPUPercents = appendNumber(data.CPUPercents, raw, "cpuPercent")
		data.HeapPercents = appendNumber(data.HeapPercents, raw, "heapPercent")
		data.HeapUsedBytes = appendNumber(data.HeapUsedBytes, raw, "heapUsedBytes")

		for name, value := range objectField(raw, "nodes") {
			if cpu, ok := toNumber(value); ok {
				data.PerNodeCPU[name] = append(data.PerNodeCPU[name], cpu)
			}
		}
	}

	log.WithFields(log.Fields{"file": path, "samples": len(data.CPUPercents), "nodes": len(data.PerNodeCPU)}).Debug("parsed node-stats log")
	return data, nil
}
