package logparse

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/perfbase/baseliner/internal/model"
)

// ParseKibanaStats reads a Kibana stats log into its time series. The
// payload is the Kibana /api/stats body; every section is optional and
// absent sections simply leave their series shorter.
func ParseKibanaStats(path string) (*model.KibanaStatsData, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	data := &model.KibanaStatsData{}
	for _, line := range lines {
		sample, ok := SplitLine(line)
		if !ok {
			continue
		}
		raw := parseJSONObject(sample.Body)
		if raw == nil {
			continue
		}

		if process := objectField(raw, "process"); process != nil {
			data.EventLoopDelays = appendNumber(data.EventLoopDelays, process, "event_loop_delay")
			if elu := objectField(process, "event_loop_utilization"); elu != nil {
				data.EventLoopUtilizations = appendNumber(data.EventLoopUtilizations, elu, "utilization")
			}
			if heap := nestedObject(process, "memory", "heap"); heap != nil {
				data.HeapUsedBytes = appendNumber(data.HeapUsedBytes, heap, "used_in_bytes")
			}
		}

		if client := objectField(raw, "elasticsearch_client"); client != nil {
			data.ActiveSockets = appendNumber(data.ActiveSockets, client, "totalActiveSockets")
			data.IdleSockets = appendNumber(data.IdleSockets, client, "totalIdleSockets")
			data.QueuedRequests = appendNumber(data.QueuedRequests, client, "totalQueuedRequests")
		}

		if rt := objectField(raw, "response_times"); rt != nil {
			data.ResponseTimesAvg = appendNumber(data.ResponseTimesAvg, rt, "avg_in_millis")
			data.ResponseTimesMax = appendNumber(data.ResponseTimesMax, rt, "max_in_millis")
		}

		if requests := objectField(raw, "requests"); requests != nil {
			data.RequestTotals = appendNumber(data.RequestTotals, requests, "total")
			data.RequestDisconnects = appendNumber(data.RequestDisconnects, requests, "disconnects")
			if codes := objectField(requests, "statusCodes"); codes != nil {
				data.HTTPErrors = append(data.HTTPErrors, sumErrorCodes(codes))
			}
		}

		if load := nestedObject(raw, "os", "load"); load != nil {
			data.Load1m = appendNumber(data.Load1m, load, "1m")
			data.Load5m = appendNumber(data.Load5m, load, "5m")
			data.Load15m = appendNumber(data.Load15m, load, "15m")
		}
	}

	log.WithFields(log.Fields{"file": path, "samples": len(data.EventLoopDelays)}).Debug("parsed kibana-stats log")
	return data, nil
}

// sumErrorCodes totals the request counts of HTTP status codes >= 400.
func sumErrorCodes(codes map[string]interface{}) float64 {
	var total float64
	for code, value := range codes {
		n, err := strconv.Atoi(code)
		if err != nil || n < 400 {
			continue
		}
		if count, ok := toNumber(value); ok {
			total += count
		}
	}
	return total
}
