package models

import "time"

type WaitlistEntry struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	ProfessionalID *uint `json:"professional_id"`

	// YYYY-MM-DD no fuso do salão
	DesiredDate string `gorm:"size:10;index" json:"desired_date"`
	Notes       string `gorm:"size:255" json:"notes"`
	Status      string `gorm:"size:20;default:'waiting'" json:"status"`

	ContactedAt *time.Time `json:"contacted_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
