package models

import "time"

// StateSnapshot is one persisted state blob row. The same shape backs the
// PostgreSQL table created by migrations and the SQLite table created by gorm.
type StateSnapshot struct {
	SnapshotKey string    `db:"snapshot_key" gorm:"column:snapshot_key;primaryKey;size:255"`
	Payload     []byte    `db:"payload" gorm:"column:payload;not null"`
	UpdatedAt   time.Time `db:"updated_at" gorm:"column:updated_at;not null"`
}

// TableName pins the gorm table name to the migration's.
func (StateSnapshot) TableName() string {
	return "state_snapshots"
}
