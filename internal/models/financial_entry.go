package models

import "time"

type FinancialEntry struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Kind        string `gorm:"size:20;not null" json:"kind"`
	Description string `gorm:"size:255" json:"description"`
	AmountCents int64  `json:"amount_cents"`

	DueDate time.Time  `json:"due_date"`
	Status  string     `gorm:"size:20;default:'open'" json:"status"`
	PaidAt  *time.Time `json:"paid_at"`

	ClientID      *uint `gorm:"index" json:"client_id"`
	AppointmentID *uint `json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
