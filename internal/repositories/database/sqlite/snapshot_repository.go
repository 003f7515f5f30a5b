package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger_app/internal/models"
)

// GormSnapshotRepository stores state blobs in a local SQLite file.
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates the repository and makes sure its table exists.
func NewSnapshotRepository(db *gorm.DB) (portsrepo.SnapshotRepositoryFacade, error) {
	if err := db.AutoMigrate(&models.StateSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state_snapshots: %w", err)
	}
	return &GormSnapshotRepository{db: db}, nil
}

var _ portsrepo.SnapshotRepositoryFacade = (*GormSnapshotRepository)(nil)

// LoadSnapshot returns the blob stored under key.
func (r *GormSnapshotRepository) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var row models.StateSnapshot
	err := r.db.WithContext(ctx).Where("snapshot_key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return row.Payload, nil
}

// SaveSnapshot upserts the blob stored under key.
func (r *GormSnapshotRepository) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	row := models.StateSnapshot{SnapshotKey: key, Payload: data, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}
