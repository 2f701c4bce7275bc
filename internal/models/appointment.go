package models

import "time"

// Appointment is every record on the calendar: real bookings and the
// blocked/liberated placeholders staff put on a slot.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint `gorm:"index" json:"salon_id"`

	ProfessionalID uint `gorm:"index:idx_appointment_pro_start" json:"professional_id"`
	Professional   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	StartTime time.Time `gorm:"index:idx_appointment_pro_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`
	Source string `gorm:"size:20;default:'staff'" json:"source"`

	// FromLiberation marca reservas que ocuparam uma vaga liberada; só
	// elas voltam para a agenda quando canceladas.
	FromLiberation bool `gorm:"not null;default:false" json:"from_liberation"`

	DepositStatus    string `gorm:"size:20;default:'none'" json:"deposit_status"`
	DepositCents     int64  `json:"deposit_cents"`
	DepositReference string `gorm:"size:64;index" json:"deposit_reference"`
	DepositCheckout  string `gorm:"size:500" json:"deposit_checkout_url,omitempty"`

	Notes         string     `gorm:"size:255" json:"notes"`
	CancelReason  string     `gorm:"size:255" json:"cancel_reason"`
	ConfirmedAt   *time.Time `json:"confirmed_at"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	DepositPaidAt *time.Time `json:"deposit_paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
