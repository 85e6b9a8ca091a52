package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/perfbase/baseliner/internal/model"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

var timestampSanitizer = strings.NewReplacer(":", "-", ".", "-")

// Store persists baselines as pretty-printed JSON files, one per extraction
// run, under a single directory.
type Store struct {
	dir string
}

var _ model.BaselineStore = (*Store)(nil)

// New returns a store rooted at dir. The directory is created on first Save.
func New(dir string) *Store {
	if dir == "" {
		dir = model.DefaultBaselinesDir
	}
	return &Store{dir: dir}
}

// Dir returns the baseline directory.
func (s *Store) Dir() string { return s.dir }

// Save writes one baseline and returns its path. The filename embeds the
// test name and creation timestamp with colons and dots replaced, keeping
// names portable and making lexical order match chronology within a test.
func (s *Store) Save(b *model.BaselineMetrics) (string, error) {
	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return "", errors.Wrapf(err, "create baselines dir %s", s.dir)
	}

	name := b.TestName + "-" + sanitizeTimestamp(b.Timestamp) + ".json"
	path := filepath.Join(s.dir, name)

	payload, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal baseline")
	}
	payload = append(payload, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, fileMode); err != nil {
		return "", errors.Wrapf(err, "write baseline tmp %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrapf(err, "rename baseline into place %s", path)
	}

	log.WithField("path", path).Info("saved baseline")
	return path, nil
}

// Load reads one baseline file. Missing or malformed files are reported
// with the path, never papered over with a default.
func (s *Store) Load(path string) (*model.BaselineMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read baseline %s", path)
	}
	var b model.BaselineMetrics
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrapf(err, "parse baseline %s", path)
	}
	return &b, nil
}

// List returns every stored baseline path, lexically descending so the most
// recent-looking name comes first. A missing directory lists as empty.
func (s *Store) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, errors.Wrapf(err, "list baselines in %s", s.dir)
	}
	sort.Slice(matches, func(i, j int) bool {
		// timestamp is embedded in the filename and lexical sort matches chronology
		return matches[i] > matches[j]
	})
	return matches, nil
}

// FindByPattern resolves a name pattern to a stored path. Patterns are
// compared against basenames after normalization; an exact basename match
// wins outright, otherwise the most recently modified prefix match is
// returned. An empty result means nothing matched.
func (s *Store) FindByPattern(pattern string) (string, error) {
	normalized := s.normalizePattern(pattern)
	if normalized == "" {
		return "", nil
	}

	paths, err := s.List()
	if err != nil {
		return "", err
	}

	var (
		best      string
		bestMtime time.Time
	)
	for _, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), ".json")
		if base == normalized {
			return path, nil
		}
		if !strings.HasPrefix(base, normalized) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().After(bestMtime) {
			best = path
			bestMtime = info.ModTime()
		}
	}
	return best, nil
}

// LoadWithPattern resolves and loads in one step. A pattern resolves via
// FindByPattern, falling back to treating it as a literal path; an empty
// pattern loads the most recent baseline. The error states what could not
// be found so callers can surface it as a fatal diagnostic.
func (s *Store) LoadWithPattern(pattern string) (*model.BaselineMetrics, string, error) {
	if strings.TrimSpace(pattern) != "" {
		path, err := s.FindByPattern(pattern)
		if err != nil {
			return nil, "", err
		}
		if path == "" {
			// The pattern may be a literal path outside the store dir.
			if _, err := os.Stat(pattern); err != nil {
				return nil, "", errors.Errorf("no baseline matches %q in %s", pattern, s.dir)
			}
			path = pattern
		}
		b, err := s.Load(path)
		if err != nil {
			return nil, "", err
		}
		return b, path, nil
	}

	paths, err := s.List()
	if err != nil {
		return nil, "", err
	}
	if len(paths) == 0 {
		return nil, "", errors.Errorf("no baselines stored in %s", s.dir)
	}
	b, err := s.Load(paths[0])
	if err != nil {
		return nil, "", err
	}
	return b, paths[0], nil
}

// Prune removes all but the keepLast lexically newest baseline files and
// returns how many were removed.
func (s *Store) Prune(keepLast int) (int, error) {
	if keepLast <= 0 {
		return 0, nil
	}
	paths, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(paths) <= keepLast {
		return 0, nil
	}

	removed := 0
	for _, old := range paths[keepLast:] {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return removed, errors.Wrapf(err, "remove baseline %s", old)
		}
		removed++
	}
	log.WithFields(log.Fields{"dir": s.dir, "removed": removed, "kept": keepLast}).Info("pruned baselines")
	return removed, nil
}

// sanitizeTimestamp renders the creation time as an ISO timestamp with
// colons and dots replaced by dashes.
func sanitizeTimestamp(ts time.Time) string {
	return timestampSanitizer.Replace(ts.UTC().Format("2006-01-02T15:04:05.000Z"))
}

// normalizePattern strips decorations a user may paste from listing output:
// a .json suffix, a relative baselines/ prefix, or the store directory
// itself in relative or absolute form.
func (s *Store) normalizePattern(pattern string) string {
	p := strings.TrimSpace(pattern)
	p = strings.TrimSuffix(p, ".json")
	if abs, err := filepath.Abs(s.dir); err == nil {
		p = strings.TrimPrefix(p, abs+string(filepath.Separator))
	}
	p = strings.TrimPrefix(p, s.dir+string(filepath.Separator))
	p = strings.TrimPrefix(p, "baselines"+string(filepath.Separator))
	return p
}
