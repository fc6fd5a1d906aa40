package storage

import "time"

// OverrideModel is the GORM model for the shortcut_overrides table
type OverrideModel struct {
	CreatedAt time.Time
	ID        string `gorm:"primaryKey"`
	Shortcut  string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (OverrideModel) TableName() string { return "shortcut_overrides" }
