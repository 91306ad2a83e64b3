package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID     *uint `gorm:"index" json:"user_id"`
	ProviderID *uint `gorm:"index" json:"provider_id"`

	Type  string `gorm:"size:50;not null" json:"type"`
	Title string `gorm:"size:100" json:"title"`
	Body  string `gorm:"size:500" json:"body"`

	AppointmentID *uint `json:"appointment_id"`

	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}
