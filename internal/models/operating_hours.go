package models

import "time"

// OperatingHours is one weekday of a provider's schedule. At most one row
// per (provider, weekday); a missing row means closed that day.
type OperatingHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"uniqueIndex:idx_provider_weekday" json:"provider_id"`

	Weekday int `gorm:"uniqueIndex:idx_provider_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsClosed  bool   `json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
