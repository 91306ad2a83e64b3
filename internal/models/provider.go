package models

import "time"

type Provider struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
	Phone       string `gorm:"size:20" json:"phone"`
	Address     string `gorm:"size:255" json:"address"`
	Timezone    string `gorm:"size:64" json:"timezone"`

	// Fixed granularity of generated slots, in minutes. Changing it only
	// affects future slot generation; booked appointments keep their window.
	SlotDurationMin int `gorm:"default:30" json:"slot_duration_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
