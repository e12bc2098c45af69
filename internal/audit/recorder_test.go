package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"txhandoff/internal/record"
)

func sample(id string) record.Record {
	return record.New(id, decimal.RequireFromString("1000.50"),
		time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), "ACC-001", "ACC-002")
}

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recorded file: %v", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("json decode: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestRecorderAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "trail.jsonl")

	recorder, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := recorder.Record(sample("TX-2024-001")); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := recorder.Record(sample("TX-2024-002")); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("expected two lines, got %d", len(entries))
	}
	if entries[0].Record.ID() != "TX-2024-001" || entries[1].Record.ID() != "TX-2024-002" {
		t.Fatalf("unexpected entries %s, %s", entries[0].Record, entries[1].Record)
	}
	if entries[1].Record.Destination() != "ACC-002" || entries[1].RecordedAt.IsZero() {
		t.Fatalf("unexpected entry %+v", entries[1])
	}
}

func TestRecorderRejectsAfterClose(t *testing.T) {
	recorder, err := Open(filepath.Join(t.TempDir(), "trail.jsonl"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := recorder.Record(sample("TX-2024-001")); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected os.ErrClosed, got %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
}

func TestRotatingRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotating", "trail.jsonl")
	recorder, err := OpenRotating(path, 1, 2, 1)
	if err != nil {
		t.Fatalf("OpenRotating error: %v", err)
	}
	if err := recorder.Record(sample("TX-2024-003")); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	entries := readEntries(t, path)
	if len(entries) != 1 || entries[0].Record.ID() != "TX-2024-003" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
