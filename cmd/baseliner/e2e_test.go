package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/perfbase/baseliner/internal/model"
)

// The end-to-end tests drive the real command tree against log fixtures on
// disk: extract, list, show and prune share the same temp store, exactly as
// a user session would.

func TestEndToEnd_ExtractShowPrune(t *testing.T) {
	resetBaselinerEnv(t)
	t.Setenv("HOME", t.TempDir())

	logsDir := t.TempDir()
	baselinesDir := t.TempDir()
	writeRunLogs(t, logsDir, "perf-smoke")
	writeRunLogs(t, logsDir, "perf-load")

	dirFlags := []string{"--logs-dir", logsDir, "--baselines-dir", baselinesDir}

	// A --no-save extraction reports without touching the store.
	out, err := runCLI(t, append([]string{
		"extract", "perf-smoke", "--no-save", "-o", "json",
		"--entity-count", "100", "--logs-per-entity", "50",
	}, dirFlags...)...)
	if err != nil {
		t.Fatalf("extract --no-save: %v", err)
	}

	var b model.BaselineMetrics
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("extract output is not JSON: %v\n%s", err, out)
	}
	if b.TestName != "perf-smoke" {
		t.Fatalf("testName = %q, want %q", b.TestName, "perf-smoke")
	}
	if b.TestConfig.EntityCount != 100 || b.TestConfig.LogsPerEntity != 50 {
		t.Fatalf("test config = %+v, want 100/50", b.TestConfig)
	}
	if b.Metrics.Latency.Search.Avg != 5.0 {
		t.Fatalf("search latency avg = %v, want 5.0", b.Metrics.Latency.Search.Avg)
	}
	if b.Metrics.Latency.Indexing.Avg != 10.0 {
		t.Fatalf("indexing latency avg = %v, want 10.0", b.Metrics.Latency.Indexing.Avg)
	}
	if b.Metrics.System.SamplingIntervalMs != 5000 {
		t.Fatalf("sampling interval = %v, want 5000", b.Metrics.System.SamplingIntervalMs)
	}
	if b.Metrics.ClusterHealth.FinalStatus != "green" {
		t.Fatalf("final status = %q, want green", b.Metrics.ClusterHealth.FinalStatus)
	}

	stored, _ := filepath.Glob(filepath.Join(baselinesDir, "*.json"))
	if len(stored) != 0 {
		t.Fatalf("--no-save still stored %d baseline(s)", len(stored))
	}

	// --all discovers both runs and persists them.
	out, err = runCLI(t, append([]string{"extract", "--all"}, dirFlags...)...)
	if err != nil {
		t.Fatalf("extract --all: %v", err)
	}
	if !strings.Contains(out, "perf-smoke") || !strings.Contains(out, "perf-load") {
		t.Fatalf("extract --all output missing a run:\n%s", out)
	}

	stored, _ = filepath.Glob(filepath.Join(baselinesDir, "*.json"))
	if len(stored) != 2 {
		t.Fatalf("stored %d baseline(s), want 2", len(stored))
	}

	// list prints both paths, newest first.
	out, err = runCLI(t, append([]string{"list"}, dirFlags...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("list printed %d lines, want 2:\n%s", len(lines), out)
	}

	// show resolves a baseline by pattern.
	out, err = runCLI(t, append([]string{"show", "perf-load", "-o", "json"}, dirFlags...)...)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var shown model.BaselineMetrics
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("show output is not JSON: %v\n%s", err, out)
	}
	if shown.TestName != "perf-load" {
		t.Fatalf("shown testName = %q, want %q", shown.TestName, "perf-load")
	}

	// prune trims the store down to the newest baseline.
	out, err = runCLI(t, append([]string{"prune", "--keep", "1"}, dirFlags...)...)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if !strings.Contains(out, "removed 1 baseline(s)") {
		t.Fatalf("prune output = %q", out)
	}

	stored, _ = filepath.Glob(filepath.Join(baselinesDir, "*.json"))
	if len(stored) != 1 {
		t.Fatalf("after prune %d baseline(s) remain, want 1", len(stored))
	}
}

func TestEndToEnd_ExtractNeedsPrefixOrAll(t *testing.T) {
	resetBaselinerEnv(t)
	t.Setenv("HOME", t.TempDir())

	_, err := runCLI(t, "extract", "--logs-dir", t.TempDir(), "--baselines-dir", t.TempDir())
	if err == nil {
		t.Fatal("expected error without a prefix or --all")
	}
	if !strings.Contains(err.Error(), "log prefix is required") {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestEndToEnd_UnknownOutputFormat(t *testing.T) {
	resetBaselinerEnv(t)
	t.Setenv("HOME", t.TempDir())

	logsDir := t.TempDir()
	writeRunLogs(t, logsDir, "perf-smoke")

	_, err := runCLI(t, "extract", "perf-smoke", "--no-save", "-o", "bogus",
		"--logs-dir", logsDir, "--baselines-dir", t.TempDir())
	if err == nil {
		t.Fatal("expected error for unknown output format")
	}
	if !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestEndToEnd_VersionPrintsBuildInfo(t *testing.T) {
	resetBaselinerEnv(t)
	t.Setenv("HOME", t.TempDir())

	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "Version:") || !strings.Contains(out, "dev") {
		t.Fatalf("version output = %q", out)
	}
}

// runCLI executes the command tree with a fresh root and captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeRunLogs lays down a complete four-log run under dir. The transform
// counters advance so that every tick past the first yields 5.0 ms/op
// search, 10.0 ms/op index and 5.0 ms/op processing latencies at the
// default 5s cadence.
func writeRunLogs(t *testing.T, dir, prefix string) {
	t.Helper()

	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	ts := func(sec int) string {
		return base.Add(time.Duration(sec) * time.Second).Format("2006-01-02T15:04:05.000Z")
	}

	health := []string{
		ts(0) + ` - {"status":"green","active_shards":10,"active_primary_shards":5,"relocating_shards":0,"initializing_shards":0,"unassigned_shards":0,"number_of_pending_tasks":0}`,
		ts(10) + ` - {"status":"green","active_shards":10,"active_primary_shards":5,"relocating_shards":0,"initializing_shards":0,"unassigned_shards":0,"number_of_pending_tasks":0}`,
	}
	nodes := []string{
		ts(0) + ` - {"cpuPercent":40,"heapPercent":55,"heapUsedBytes":1000000,"nodes":{"es01":40}}`,
		ts(10) + ` - {"cpuPercent":60,"heapPercent":65,"heapUsedBytes":1200000,"nodes":{"es01":60}}`,
	}

	var transforms []string
	for i, c := range []struct{ st, stt, it, itt, pt, ptt, dp, di float64 }{
		{100, 1000, 50, 500, 100, 200, 400, 320},
		{110, 1050, 70, 700, 110, 250, 800, 640},
		{120, 1100, 90, 900, 120, 300, 1200, 960},
	} {
		stats := fmt.Sprintf(`{"search_total":%g,"search_time_in_ms":%g,"index_total":%g,"index_time_in_ms":%g,"processing_total":%g,"processing_time_in_ms":%g,"documents_processed":%g,"documents_indexed":%g}`,
			c.st, c.stt, c.it, c.itt, c.pt, c.ptt, c.dp, c.di)
		payload := fmt.Sprintf(`{"transforms":[{"id":"host-1","state":"indexing","stats":%s}]}`, stats)
		transforms = append(transforms, fmt.Sprintf("%s - Transform host-1 stats: %s", ts(i*5), payload))
	}

	kibana := []string{
		ts(0) + ` - {"process":{"event_loop_delay":10,"event_loop_utilization":{"utilization":0.2},"memory":{"heap":{"used_in_bytes":200000000}}},"response_times":{"avg_in_millis":12,"max_in_millis":40},"requests":{"total":100,"disconnects":0,"statusCodes":{"200":90,"404":10}},"os":{"load":{"1m":1.0,"5m":0.8,"15m":0.6}}}`,
		ts(10) + ` - {"process":{"event_loop_delay":12,"event_loop_utilization":{"utilization":0.3},"memory":{"heap":{"used_in_bytes":210000000}}},"response_times":{"avg_in_millis":14,"max_in_millis":50},"requests":{"total":100,"disconnects":0,"statusCodes":{"200":90,"404":10}},"os":{"load":{"1m":1.1,"5m":0.9,"15m":0.7}}}`,
	}

	writeLogLines(t, dir, prefix+"-cluster-health-1.log", health)
	writeLogLines(t, dir, prefix+"-node-stats-1.log", nodes)
	writeLogLines(t, dir, prefix+"-transform-stats-1.log", transforms)
	writeLogLines(t, dir, prefix+"-kibana-stats-1.log", kibana)
}

func writeLogLines(t *testing.T, dir, name string, lines []string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
