package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBProvider implements KV for LevelDB
type LevelDBProvider struct {
	once sync.Once
	db   *leveldb.DB
}

// NewLevelDBProvider opens (or creates) a LevelDB directory
func NewLevelDBProvider(directory string) (*LevelDBProvider, error) {
	db, err := leveldb.OpenFile(directory, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB: %w", err)
	}

	return &LevelDBProvider{db: db}, nil
}

// Get retrieves a value by key
func (p *LevelDBProvider) Get(key string) ([]byte, error) {
	value, err := p.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// Set stores a key-value pair
func (p *LevelDBProvider) Set(key string, value []byte) error {
	return p.db.Put([]byte(key), value, nil)
}

// SetMany stores all pairs in one atomic batch
func (p *LevelDBProvider) SetMany(values map[string][]byte) error {
	batch := new(leveldb.Batch)
	for k, v := range values {
		batch.Put([]byte(k), v)
	}
	return p.db.Write(batch, nil)
}

// Remove deletes a key-value pair
func (p *LevelDBProvider) Remove(key string) error {
	return p.db.Delete([]byte(key), nil)
}

// Close closes the database
func (p *LevelDBProvider) Close() error {
	// avoid double close when shared by several components
	var err error
	p.once.Do(func() {
		err = p.db.Close()
	})
	return err
}
