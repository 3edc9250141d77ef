// Package store provides SnapshotStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/household-ledger/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// saveErr, when set, makes every Save fail. Used to exercise the
	// best-effort persistence path in tests.
	saveErr error
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.blobs[key] = cp
	return nil
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.blobs[key]
	if !ok {
		return nil, ledger.ErrSnapshotNotFound
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return cp, nil
}

// Seed installs a blob directly, bypassing Save failures.
func (m *Memory) Seed(key string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = payload
}

// FailSavesWith makes subsequent Saves return err; nil restores writes.
func (m *Memory) FailSavesWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}
