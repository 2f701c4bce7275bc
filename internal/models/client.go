package models

import "time"

// Cliente do salão. PasswordHash só existe quando o cliente se cadastrou
// pelo portal público.
type Client struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index:idx_client_salon_phone,unique" json:"salon_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index:idx_client_salon_phone,unique" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"size:500" json:"notes"`

	Birthday       *time.Time `json:"birthday"`
	MarketingOptIn bool       `gorm:"default:true" json:"marketing_opt_in"`
	PasswordHash   string     `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
