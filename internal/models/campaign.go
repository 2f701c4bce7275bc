package models

import "time"

type Campaign struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Template     string `gorm:"type:text" json:"template"`
	Audience     string `gorm:"size:30;default:'all'" json:"audience"`
	InactiveDays int    `json:"inactive_days"`
	ImageURL     string `gorm:"size:500" json:"image_url"`
	CreatedBy    uint   `json:"created_by"`

	Recipients []CampaignRecipient `json:"recipients,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CampaignRecipient struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CampaignID uint `gorm:"index" json:"campaign_id"`
	ClientID   uint `json:"client_id"`

	Name    string     `gorm:"size:100" json:"name"`
	Phone   string     `gorm:"size:20" json:"phone"`
	Message string     `gorm:"type:text" json:"message"`
	Link    string     `gorm:"type:text" json:"link"`
	SentAt  *time.Time `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
}
