package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AvailabilityInput struct {
	SalonID        uint
	ProfessionalID uint
	ServiceID      uint
	Date           time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BuildGrid percorre o expediente em passos da duração do serviço e
// devolve as janelas livres. busy deve estar ordenado por início e conter
// apenas registros que ocupam horário (reservas ativas e bloqueios).
func BuildGrid(wh *models.WorkingHours, date time.Time, duration time.Duration, busy []models.Appointment) []TimeSlot {
	slots := []TimeSlot{}

	w, ok := WindowFor(wh, date)
	if !ok || duration <= 0 {
		return slots
	}

	apIdx := 0

	for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(duration) {
		slotStart := cur
		slotEnd := cur.Add(duration)

		// almoço
		if w.HasLunch && Overlaps(slotStart, slotEnd, w.LunchStart, w.LunchEnd) {
			continue
		}

		// avança registros já encerrados
		for apIdx < len(busy) && !busy[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		for i := apIdx; i < len(busy) && busy[i].StartTime.Before(slotEnd); i++ {
			if Overlaps(slotStart, slotEnd, busy[i].StartTime, busy[i].EndTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots
}

// Busy filtra os registros que impedem a grade de expediente.
func Busy(records []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(records))
	for _, r := range records {
		s := Status(r.Status)
		if IsActive(s) || s == StatusBlocked {
			out = append(out, r)
		}
	}
	return out
}
