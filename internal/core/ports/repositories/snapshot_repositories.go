package repositories

import "context"

// SnapshotReader loads persisted state blobs.
type SnapshotReader interface {
	// LoadSnapshot returns the blob stored under key, or apperrors.ErrNotFound.
	LoadSnapshot(ctx context.Context, key string) ([]byte, error)
}

// SnapshotWriter stores persisted state blobs.
type SnapshotWriter interface {
	// SaveSnapshot replaces the blob stored under key.
	SaveSnapshot(ctx context.Context, key string, data []byte) error
}

// SnapshotRepositoryFacade combines snapshot read and write operations.
// Implementations are the local key-value blob store the persistence gateway flushes to.
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
}

// CloudSyncer pushes a flushed snapshot to an optional remote copy.
type CloudSyncer interface {
	Push(ctx context.Context, key string, data []byte) error
}
