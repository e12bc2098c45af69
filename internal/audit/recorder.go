// Package audit appends transfer records to an append-only JSONL trail.
package audit

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"txhandoff/internal/record"
)

// Entry is one line of the audit trail.
type Entry struct {
	Record     record.Record `json:"record"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Recorder appends entries as JSON lines for later analysis.
type Recorder struct {
	mu  sync.Mutex
	out io.WriteCloser
	enc *json.Encoder
	now func() time.Time
}

// NewRecorder writes entries to out.
func NewRecorder(out io.WriteCloser) *Recorder {
	return &Recorder{
		out: out,
		enc: json.NewEncoder(out),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Open creates/opens the target file and returns a recorder.
func Open(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return NewRecorder(file), nil
}

// OpenRotating returns a recorder whose file rotates once it exceeds maxSizeMB.
func OpenRotating(path string, maxSizeMB, maxBackups, maxAgeDays int) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return NewRecorder(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}), nil
}

// Record takes ownership of rec and writes it as a single line.
func (r *Recorder) Record(rec record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.out == nil {
		return os.ErrClosed
	}
	return r.enc.Encode(Entry{Record: rec, RecordedAt: r.now()})
}

// Close flushes and closes the underlying writer.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.out == nil {
		return nil
	}
	err := r.out.Close()
	r.out = nil
	return err
}
