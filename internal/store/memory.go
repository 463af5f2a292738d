package store

import "sync"

// MemoryProvider keeps blobs in process memory. Used by tests and STORE_BACKEND=memory.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string][]byte)}
}

func (p *MemoryProvider) Get(key string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (p *MemoryProvider) Set(key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.data[key] = append([]byte(nil), value...)
	return nil
}

func (p *MemoryProvider) SetMany(values map[string][]byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for k, v := range values {
		p.data[k] = append([]byte(nil), v...)
	}
	return nil
}

func (p *MemoryProvider) Remove(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.data, key)
	return nil
}

func (p *MemoryProvider) Close() error {
	return nil
}
