// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog persists per-document pipeline results as an append-only
// newline-delimited JSON log, with a CSV section export and a plain-text
// summary alongside it. The log is the only resource shared across
// documents in a run; it is an explicit instance with an open/close
// lifecycle tied to the run, and each record is written in a single
// append.
package runlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/corpus-refinery/pkg/types"
)

// filePrefix names the run-log family; the improvement loop looks for the
// newest file with this prefix.
const filePrefix = "structure_enforcement_"

// Paths holds the three output files of one enforcement run.
type Paths struct {
	Log     string
	CSV     string
	Summary string
}

// PathsFor returns the log file paths for a run started at now.
func PathsFor(logDir string, now time.Time) Paths {
	stamp := now.Format("20060102_150405")
	base := filepath.Join(logDir, filePrefix+stamp)
	return Paths{
		Log:     base + ".jsonl",
		CSV:     base + "_sections.csv",
		Summary: base + "_summary.txt",
	}
}

// Writer appends FileRecords to a JSONL log file.
type Writer struct {
	f *os.File
}

// Open creates the log directory if needed and opens the log file for
// appending.
func Open(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening run log %s: %w", path, err)
	}
	return &Writer{f: f}, nil
}

// Append writes one record as a single JSON line. The record is marshaled
// first and written with one call so concurrent readers never observe a
// torn line.
func (w *Writer) Append(rec types.FileRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record for %s: %w", rec.OriginalFile, err)
	}
	if _, err := w.f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending record for %s: %w", rec.OriginalFile, err)
	}
	return nil
}

// Close releases the log file.
func (w *Writer) Close() error {
	return w.f.Close()
}

// Read loads all records from a JSONL run log. Blank lines are skipped;
// a malformed line is an error, since the log is machine-written.
func Read(path string) ([]types.FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening run log %s: %w", path, err)
	}
	defer f.Close()

	var records []types.FileRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec types.FileRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing run log %s: %w", path, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading run log %s: %w", path, err)
	}
	return records, nil
}

// Latest returns the newest run log in logDir, by filename (the embedded
// timestamp sorts lexically).
func Latest(logDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(logDir, filePrefix+"*.jsonl"))
	if err != nil {
		return "", fmt.Errorf("listing run logs: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no run logs found in %s: run enforce first", logDir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
