package report

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/perfbase/baseliner/internal/model"
)

// Formatter renders one baseline into a machine-readable document.
type Formatter func(*model.BaselineMetrics) ([]byte, error)

// JSONFormatter renders the baseline exactly as the store persists it.
func JSONFormatter(b *model.BaselineMetrics) ([]byte, error) {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "format baseline as json")
	}
	return append(out, '\n'), nil
}

// YAMLFormatter renders the baseline as YAML.
func YAMLFormatter(b *model.BaselineMetrics) ([]byte, error) {
	out, err := yaml.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "format baseline as yaml")
	}
	return out, nil
}

// ByName maps an output format name to its formatter. Text output is not a
// Formatter; see WriteText.
func ByName(name string) (Formatter, error) {
	switch name {
	case "json":
		return JSONFormatter, nil
	case "yaml", "yml":
		return YAMLFormatter, nil
	default:
		return nil, errors.Errorf("unknown output format %q", name)
	}
}
