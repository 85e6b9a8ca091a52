package logparse

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
)

// maxLineBytes bounds a single log line. Stats payloads are sizeable JSON
// objects but stay well under this.
const maxLineBytes = 1024 * 1024 // 1MB

// ReadLines reads a whole log file into memory, one entry per line.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	buf := make([]byte, maxLineBytes)
	scanner.Buffer(buf, maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read log file %s", path)
	}
	return lines, nil
}
