package model

import (
	"time"
)

// LevelSetting stores one persisted level slot
type LevelSetting struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for LevelSetting
func (LevelSetting) TableName() string {
	return "level_settings"
}
