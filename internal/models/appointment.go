package models

import "time"

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ProviderID uint     `gorm:"index" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"provider"`

	// Nil for walk-in bookings made without an account.
	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	TotalPrice float64 `json:"total_price"`

	Services []AppointmentService `json:"services"`

	PatientName  string `gorm:"size:100" json:"patient_name"`
	PatientEmail string `gorm:"size:100" json:"patient_email"`
	PatientPhone string `gorm:"size:20" json:"patient_phone"`

	Notes         string `gorm:"size:500" json:"notes"`
	ActivityNotes string `gorm:"size:500" json:"activity_notes"`

	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CancelledBy        string     `gorm:"size:20" json:"cancelled_by"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService snapshots a booked service: name and price at booking
// time, so later service edits never change past bookings.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ServiceID     uint `json:"service_id"`

	Name  string  `gorm:"size:100" json:"name"`
	Price float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
}
