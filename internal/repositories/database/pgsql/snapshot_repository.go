package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSnapshotRepository stores state blobs in the state_snapshots table.
type PgxSnapshotRepository struct {
	Pool *pgxpool.Pool
}

// NewSnapshotRepository creates a snapshot repository on pool.
func NewSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{
		Pool: pool,
	}
}

// Ensure implementation matches interface
var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

// LoadSnapshot returns the blob stored under key.
func (r *PgxSnapshotRepository) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT snapshot_key, payload, updated_at
		FROM state_snapshots
		WHERE snapshot_key = $1;
	`
	var row models.StateSnapshot
	err := r.Pool.QueryRow(ctx, query, key).Scan(&row.SnapshotKey, &row.Payload, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return row.Payload, nil
}

// SaveSnapshot upserts the blob stored under key.
func (r *PgxSnapshotRepository) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO state_snapshots (snapshot_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (snapshot_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at;
	`
	return withTx(ctx, r.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, key, data, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to save snapshot %s: %w", key, err)
		}
		return nil
	})
}
