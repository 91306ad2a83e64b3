package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	Reference   string    `json:"reference"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	PatientName string    `json:"patient_name"`
	TotalPrice  float64   `json:"total_price"`
	Services    []string  `json:"services"`
}
