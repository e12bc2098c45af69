// Package store persists transfer records for the persist consumer.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"txhandoff/internal/record"
)

var (
	// ErrDuplicate reports a second save for an id that is already stored.
	ErrDuplicate = errors.New("store: record already exists")
	// ErrNotFound reports a lookup for an unknown id.
	ErrNotFound = errors.New("store: record not found")
)

// Store keeps records keyed by id. Records with equal fields but different
// ids are distinct entries.
type Store interface {
	// Save takes ownership of rec and stores it.
	Save(ctx context.Context, rec record.Record) error
	// Get loads the record stored under id.
	Get(ctx context.Context, id string) (record.Record, error)
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverLevelDB  = "leveldb"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options carries driver specific connection settings.
type Options struct {
	Path     string
	DSN      string
	Addr     string
	Password string
}

// Build opens the store implementation matching driver.
func Build(ctx context.Context, driver string, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		return NewMemory(0), nil
	case DriverLevelDB:
		return NewLevelDB(opts.Path)
	case DriverPostgres:
		return NewPostgres(ctx, opts.DSN)
	case DriverRedis:
		return NewRedis(opts.Addr, opts.Password)
	default:
		return nil, fmt.Errorf("store driver invalid: %s", driver)
	}
}
