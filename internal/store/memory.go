package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory Store used for unit tests and local
// experiments. It mimics the file store's observable behavior: one live
// document of any JSON shape, a snapshot of the prior document recorded
// on every overwrite, empty object on fresh load.
type MemoryStore struct {
	mu      sync.RWMutex
	raw     []byte
	backups []BackupInfo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.raw != nil
}

func (m *MemoryStore) Save(doc any) error {
	if emptyDocument(doc) {
		return ErrEmptyDocument
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raw != nil {
		name := "schedule_backup_" + timeNow().Format("20060102_150405") + ".json"
		m.backups = append(m.backups, BackupInfo{Name: name, Size: int64(len(m.raw)), CreatedAt: timeNow()})
	}
	m.raw = b
	return nil
}

func (m *MemoryStore) Load() (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.raw == nil {
		return map[string]any{}, nil
	}
	var doc any
	if err := json.Unmarshal(m.raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *MemoryStore) Backups() ([]BackupInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]BackupInfo, len(m.backups))
	copy(out, m.backups)
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*FileStore)(nil)
