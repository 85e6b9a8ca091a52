package model

// BaselineStore is the persistence contract for extracted baselines.
type BaselineStore interface {
	// Save persists a baseline and returns the path it was written to.
	Save(b *BaselineMetrics) (string, error)
	// Load reads one baseline file.
	Load(path string) (*BaselineMetrics, error)
	// List returns every stored baseline path, lexically descending.
	List() ([]string, error)
	// FindByPattern resolves a name pattern to a stored path, or "" when
	// nothing matches.
	FindByPattern(pattern string) (string, error)
	// LoadWithPattern resolves and loads in one step; with an empty pattern
	// it loads the most recent baseline.
	LoadWithPattern(pattern string) (*BaselineMetrics, string, error)
}
