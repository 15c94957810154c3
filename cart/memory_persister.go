package cart

import (
	"context"
	"sync"
)

// MemoryPersister keeps carts in process. It backs tests and local runs
// without Redis; FailSaves makes every Save return the given error.
type MemoryPersister struct {
	mu        sync.Mutex
	carts     map[string][]Item
	FailSaves error
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{carts: make(map[string][]Item)}
}

func (m *MemoryPersister) Load(_ context.Context, cartID string) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.carts[cartID]
	if !ok {
		return nil, nil
	}
	return append([]Item(nil), items...), nil
}

func (m *MemoryPersister) Save(_ context.Context, cartID string, items []Item) error {
	if m.FailSaves != nil {
		return m.FailSaves
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = append([]Item(nil), items...)
	return nil
}

func (m *MemoryPersister) Delete(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	return nil
}
