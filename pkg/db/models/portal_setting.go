package models

import "time"

// PortalSettingsID pins the settings table to a single row.
const PortalSettingsID = 1

// PortalSetting holds the admin-tunable portal configuration. Exactly one row
// exists; it owns the live value of the daily suggestion quota.
type PortalSetting struct {
	ID                  int       `gorm:"column:id;primaryKey"`
	MaxDailySuggestions int       `gorm:"column:max_daily_suggestions;not null"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
