// Package memory provides a process-local snapshot store for tests and for
// running without any durable storage.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_ledger_app/internal/core/ports/repositories"
)

// SnapshotRepository keeps blobs in a map.
type SnapshotRepository struct {
	mu        sync.RWMutex
	blobs     map[string][]byte
	failSaves bool
	saves     int
}

// NewSnapshotRepository creates an empty in-memory store.
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{blobs: make(map[string][]byte)}
}

var _ portsrepo.SnapshotRepositoryFacade = (*SnapshotRepository)(nil)

func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, key)
	}
	return append([]byte(nil), data...), nil
}

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSaves {
		return fmt.Errorf("%w: snapshot store failing", apperrors.ErrUnavailable)
	}
	r.blobs[key] = append([]byte(nil), data...)
	r.saves++
	return nil
}

// SetFailSaves makes every following SaveSnapshot fail until reset.
func (r *SnapshotRepository) SetFailSaves(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failSaves = fail
}

// Saves returns how many writes succeeded.
func (r *SnapshotRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

// Put seeds a blob directly.
func (r *SnapshotRepository) Put(key string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[key] = append([]byte(nil), data...)
}
