// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

// Package calllog persists one CSV row per analyzed call.
//
// The log is append-only: rows are never updated or deleted, and the file
// grows without bound. The header row is written once, when the file is
// created. A single process instance is the only writer.
package calllog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// columns is the CSV header, in row order. Changing the order breaks files
// written by earlier versions.
var columns = []string{
	"id",
	"timestamp",
	"model",
	"transcript",
	"summary",
	"sentiment",
	"prompt_tokens",
	"completion_tokens",
	"total_tokens",
	"latency_ms",
}

// Record is a single logged API call.
type Record struct {
	ID               string
	Timestamp        time.Time
	Model            string
	Transcript       string
	Summary          string
	Sentiment        string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	LatencyMS        int64
}

// Log is a CSV call log bound to a file path.
type Log struct {
	path string
}

// New creates a Log for the given path. The file is not touched until the
// first Append.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the log's file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes exactly one row to the log, creating the file (and its parent
// directory) with a header row if needed. A missing ID is assigned a fresh
// UUID and a zero Timestamp is set to the current UTC time. The normalized
// record is returned.
func (l *Log) Append(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return Record{}, fmt.Errorf("create log directory: %w", err)
		}
	}

	// The header belongs at the top of a brand-new or empty file only.
	writeHeader := false
	info, err := os.Stat(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		writeHeader = true
	case err != nil:
		return Record{}, fmt.Errorf("stat log file: %w", err)
	case info.Size() == 0:
		writeHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // user-chosen log path
	if err != nil {
		return Record{}, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close() //nolint:errcheck // write errors surface via the csv writer

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(columns); err != nil {
			return Record{}, fmt.Errorf("write log header: %w", err)
		}
	}
	if err := w.Write(rec.row()); err != nil {
		return Record{}, fmt.Errorf("write log row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Record{}, fmt.Errorf("flush log row: %w", err)
	}

	return rec, nil
}

// List reads all records from the log, oldest first. A missing file yields an
// empty slice and no error.
func (l *Log) List() ([]Record, error) {
	f, err := os.Open(l.path) //nolint:gosec // user-chosen log path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(columns)

	var records []Record
	first := true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read log file: %w", err)
		}
		if first {
			first = false
			if row[0] == columns[0] {
				continue
			}
		}
		rec, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("parse log row: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Count returns the number of data rows in the log.
func (l *Log) Count() (int, error) {
	records, err := l.List()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// row serializes the record in column order.
func (r Record) row() []string {
	return []string{
		r.ID,
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Model,
		r.Transcript,
		r.Summary,
		r.Sentiment,
		strconv.Itoa(r.PromptTokens),
		strconv.Itoa(r.CompletionTokens),
		strconv.Itoa(r.TotalTokens),
		strconv.FormatInt(r.LatencyMS, 10),
	}
}

// fromRow parses a CSV row in column order.
func fromRow(row []string) (Record, error) {
	ts, err := time.Parse(time.RFC3339, row[1])
	if err != nil {
		return Record{}, fmt.Errorf("timestamp %q: %w", row[1], err)
	}

	ints := make([]int64, 4)
	for i, raw := range row[6:10] {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("numeric field %q: %w", raw, err)
		}
		ints[i] = v
	}

	return Record{
		ID:               row[0],
		Timestamp:        ts,
		Model:            row[2],
		Transcript:       row[3],
		Summary:          row[4],
		Sentiment:        row[5],
		PromptTokens:     int(ints[0]),
		CompletionTokens: int(ints[1]),
		TotalTokens:      int(ints[2]),
		LatencyMS:        ints[3],
	}, nil
}
