package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// SnapshotStore keeps the durable copy of a cart. A missing snapshot is
// reported as ErrSnapshotNotFound.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]LineItem, error)
	Save(ctx context.Context, key string, items []LineItem) error
	Delete(ctx context.Context, key string) error
}

// MarshalSnapshot serializes the full line item sequence.
func MarshalSnapshot(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal cart snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot is the inverse of MarshalSnapshot.
func UnmarshalSnapshot(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}
	if items == nil {
		items = []LineItem{}
	}
	return items, nil
}

// MemorySnapshotStore keeps serialized snapshots in process memory. It is used
// when no Redis address is configured and in tests.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

func (m *MemorySnapshotStore) Load(_ context.Context, key string) ([]LineItem, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return UnmarshalSnapshot(raw)
}

func (m *MemorySnapshotStore) Save(_ context.Context, key string, items []LineItem) error {
	raw, err := MarshalSnapshot(items)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemorySnapshotStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}
