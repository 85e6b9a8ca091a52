package baseline

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/perfbase/baseliner/internal/model"
)

// extractConcurrency bounds how many runs are baselined at once by
// ExtractAll. Each run's own pipeline stays sequential.
const extractConcurrency = 4

// DiscoverRunPrefixes infers the distinct run prefixes present in a logs
// directory from the kind-marker position in each filename. Trailing
// separators are trimmed so the prefix reads like a test name.
func DiscoverRunPrefixes(logsDir string) ([]string, error) {
	entries, err := os.ReadDir(logsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "read logs dir %s", logsDir)
	}

	markers := []string{
		model.MarkerClusterHealth,
		model.MarkerNodeStats,
		model.MarkerTransformStats,
		model.MarkerKibanaStats,
	}

	seen := make(map[string]struct{})
	var prefixes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		for _, marker := range markers {
			idx := strings.Index(name, marker)
			if idx <= 0 {
				continue
			}
			prefix := strings.TrimRight(name[:idx], "-_.")
			if prefix == "" {
				break
			}
			if _, ok := seen[prefix]; !ok {
				seen[prefix] = struct{}{}
				prefixes = append(prefixes, prefix)
			}
			break
		}
	}

	sort.Strings(prefixes)
	return prefixes, nil
}

// ExtractAll baselines every given prefix, a bounded number of runs in
// flight at once. Results come back in prefix order; the first failed run
// fails the batch.
func ExtractAll(ctx context.Context, logsDir string, prefixes []string, cfg model.TestConfig) ([]*model.BaselineMetrics, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(extractConcurrency)

	results := make([]*model.BaselineMetrics, len(prefixes))
	for i, prefix := range prefixes {
		i, prefix := i, prefix
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := Extract(logsDir, prefix, cfg)
			if err != nil {
				return errors.Wrapf(err, "extract run %s", prefix)
			}
			results[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
