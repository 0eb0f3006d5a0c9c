package models

import "time"

// KVEntry backs the PostgreSQL key-value store.
type KVEntry struct {
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
