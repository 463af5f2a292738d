package store

import (
	"fmt"
)

// KV is the durable key-value medium secrets are persisted to.
// One blob per key; Get returns nil, nil when nothing is stored.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
	// SetMany writes every pair or none of them
	SetMany(values map[string][]byte) error
	Close() error
}

// Open creates a provider for the configured backend
func Open(backend, path string) (KV, error) {
	switch backend {
	case "bolt":
		p, err := NewBoltProvider(path)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "leveldb":
		p, err := NewLevelDBProvider(path)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "memory":
		return NewMemoryProvider(), nil
	}
	return nil, fmt.Errorf("unsupported store backend %q", backend)
}
