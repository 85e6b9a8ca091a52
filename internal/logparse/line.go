package logparse

import (
	"regexp"
	"time"
)

// Log lines are "<ISO8601 timestamp> - <payload>". Transform stats lines
// carry an extra "Transform <id> stats: " prefix on the payload.
var (
	lineRegex      = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T[\d:.-]+Z)\s+-\s+(.+)$`)
	transformRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T[\d:.-]+Z)\s+-\s+Transform\s+(.+?)\s+stats:\s+(.+)$`)
)

// Sample is one matched log line: its timestamp and the raw payload text.
type Sample struct {
	Timestamp time.Time
	Body      string
}

// TransformSample is one matched transform-stats line.
type TransformSample struct {
	Timestamp   time.Time
	TransformID string
	Body        string
}

// SplitLine matches the base line grammar. The second return is false for
// lines that do not match or whose timestamp does not parse.
func SplitLine(line string) (Sample, bool) {
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return Sample{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, m[1])
	if err != nil {
		return Sample{}, false
	}
	return Sample{Timestamp: ts, Body: m[2]}, true
}

// SplitTransformLine matches the transform-stats line grammar. The transform
// id is whatever sits between "Transform" and "stats:", so ids may contain
// any characters short of a newline.
func SplitTransformLine(line string) (TransformSample, bool) {
	m := transformRegex.FindStringSubmatch(line)
	if m == nil {
		return TransformSample{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, m[1])
	if err != nil {
		return TransformSample{}, false
	}
	return TransformSample{Timestamp: ts, TransformID: m[2], Body: m[3]}, true
}
