package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/perfbase/baseliner/internal/model"
)

// WriteText renders a human-oriented summary of one baseline.
func WriteText(w io.Writer, b *model.BaselineMetrics) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintf(tw, "Baseline\t%s\n", b.TestName)
	fmt.Fprintf(tw, "Created\t%s\n", b.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(tw, "Entities\t%d\n", b.TestConfig.EntityCount)
	fmt.Fprintf(tw, "Logs per entity\t%d\n", b.TestConfig.LogsPerEntity)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "latency ms/op\tavg\tp50\tp95\tp99\tmax")
	percentileRow(tw, "search", b.Metrics.Latency.Search)
	percentileRow(tw, "indexing", b.Metrics.Latency.Indexing)
	percentileRow(tw, "processing", b.Metrics.Latency.Processing)
	fmt.Fprintln(tw)

	sys := b.Metrics.System
	fmt.Fprintf(tw, "cpu %%\t%.1f avg\t%.1f max\n", sys.AvgCPUPercent, sys.MaxCPUPercent)
	fmt.Fprintf(tw, "heap %%\t%.1f avg\t%.1f max\n", sys.AvgHeapPercent, sys.MaxHeapPercent)
	fmt.Fprintf(tw, "throughput\t%.2f docs/s\n", sys.ThroughputDocsPerSec)
	fmt.Fprintf(tw, "index efficiency\t%.3f\n", sys.IndexEfficiency)
	fmt.Fprintf(tw, "sampling interval\t%.0f ms\n", sys.SamplingIntervalMs)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "entity kind\tdocs processed\tdocs indexed\tsearch p95")
	for _, kind := range model.AllEntityTypes() {
		em := b.Metrics.PerEntityType[kind]
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.2f\n", kind, em.DocumentsProcessed, em.DocumentsIndexed, em.SearchLatency.P95)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "cluster status\t%s\n", b.Metrics.ClusterHealth.FinalStatus)
	fmt.Fprintf(tw, "failures\t%d search\t%d index\n", b.Metrics.Errors.SearchFailures, b.Metrics.Errors.IndexFailures)
	if b.Metrics.Kibana.Requests.Total > 0 {
		fmt.Fprintf(tw, "kibana requests\t%.0f\t%.2f%% errors\n",
			b.Metrics.Kibana.Requests.Total, b.Metrics.Kibana.Requests.ErrorRatePercent)
	}

	return tw.Flush()
}

func percentileRow(w io.Writer, label string, p model.PercentileMetrics) {
	fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n", label, p.Avg, p.P50, p.P95, p.P99, p.Max)
}
