package models

import "time"

// BreakTime is a named interval excluded from bookable slots. Multiple
// breaks per weekday are allowed and may overlap each other.
type BreakTime struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index" json:"provider_id"`

	Weekday int    `json:"weekday"`
	Name    string `gorm:"size:100;not null" json:"name"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
