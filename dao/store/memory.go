package store

import (
	"context"
	"sync"

	"github.com/nexorasim/LotayaAI/models"
)

// MemoryStore 进程内存储，用于测试和没有任何后端可用时的降级启动
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.GenerationRecord
}

// NewMemoryStore 创建空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*models.GenerationRecord)}
}

func (m *MemoryStore) Create(_ context.Context, rec *models.GenerationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[rec.GenerationID]; exists {
		return ErrDuplicateID
	}
	clone := *rec
	clone.Images = append([]string(nil), rec.Images...)
	m.records[rec.GenerationID] = &clone
	return nil
}

func (m *MemoryStore) UpdateTerminal(_ context.Context, id string, upd TerminalUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = upd.Status
	rec.Images = append([]string(nil), upd.Images...)
	rec.ResultURL = upd.ResultURL
	rec.Error = upd.Error
	return nil
}

func (m *MemoryStore) Find(_ context.Context, id string) (*models.GenerationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rec
	clone.Images = append([]string(nil), rec.Images...)
	return &clone, nil
}

// Len 当前记录数，仅测试用
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
