package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"txhandoff/internal/record"
)

// record key: record:{id}	value: record JSON

// LevelDB stores records in an embedded level db directory.
type LevelDB struct {
	// mu makes the existence check and the write in Save one step.
	mu sync.Mutex
	db *leveldb.DB
}

// NewLevelDB opens (or creates) the level db rooted at path.
func NewLevelDB(path string) (*LevelDB, error) {
	if path == "" {
		return nil, fmt.Errorf("leveldb store requires a path")
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &LevelDB{db: db}, nil
}

func recordKey(id string) []byte { return []byte("record:" + id) }

func (s *LevelDB) Save(_ context.Context, rec record.Record) error {
	key := recordKey(rec.ID())
	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := s.db.Has(key, nil)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return s.db.Put(key, value, nil)
}

func (s *LevelDB) Get(_ context.Context, id string) (record.Record, error) {
	value, err := s.db.Get(recordKey(id), nil)
	if err == leveldb.ErrNotFound {
		return record.Record{}, ErrNotFound
	}
	if err != nil {
		return record.Record{}, err
	}
	var rec record.Record
	if err := json.Unmarshal(value, &rec); err != nil {
		return record.Record{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return rec, nil
}

func (s *LevelDB) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ Store = (*LevelDB)(nil)
