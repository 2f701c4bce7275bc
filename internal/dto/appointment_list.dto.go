package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID             uint      `json:"id"`
	ProfessionalID uint      `json:"professional_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	Source         string    `json:"source"`
	ClientName     string    `json:"client_name"`
	ClientPhone    string    `json:"client_phone"`
	ServiceName    string    `json:"service_name"`
	DepositStatus  string    `json:"deposit_status"`
	DepositCents   int64     `json:"deposit_cents"`
	Notes          string    `json:"notes,omitempty"`
	SlotState      string    `json:"slot_state,omitempty"`
}

func AppointmentList(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:             ap.ID,
		ProfessionalID: ap.ProfessionalID,
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		Status:         ap.Status,
		Source:         ap.Source,
		DepositStatus:  ap.DepositStatus,
		DepositCents:   ap.DepositCents,
		Notes:          ap.Notes,
	}

	if ap.Client != nil {
		out.ClientName = ap.Client.Name
		out.ClientPhone = ap.Client.Phone
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}

	return out
}

func AppointmentListFrom(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentList(ap))
	}
	return out
}

// OpenSlotDTO é a vaga liberada exposta ao cliente, sem dados de terceiros.
type OpenSlotDTO struct {
	ID             uint      `json:"id"`
	ProfessionalID uint      `json:"professional_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	DurationMin    int       `json:"duration_min"`
}

func OpenSlot(ap models.Appointment) OpenSlotDTO {
	return OpenSlotDTO{
		ID:             ap.ID,
		ProfessionalID: ap.ProfessionalID,
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		DurationMin:    int(ap.EndTime.Sub(ap.StartTime).Minutes()),
	}
}
