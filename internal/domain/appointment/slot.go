package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// SlotState é a visão consolidada de uma janela de horário.
type SlotState string

const (
	SlotClosed    SlotState = "closed"
	SlotBlocked   SlotState = "blocked"
	SlotOpen      SlotState = "open"
	SlotPending   SlotState = "pending"
	SlotScheduled SlotState = "scheduled"
	SlotCompleted SlotState = "completed"
)

// precedência: reservas reais vencem bloqueios, que vencem liberações.
var slotRank = map[SlotState]int{
	SlotClosed:    0,
	SlotOpen:      1,
	SlotBlocked:   2,
	SlotPending:   3,
	SlotScheduled: 4,
	SlotCompleted: 5,
}

// Overlaps compara intervalos semiabertos [aStart, aEnd) e [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ResolveSlot reconcilia todos os registros de um profissional para a
// janela [start, end). Registros cancelados não contam.
func ResolveSlot(records []models.Appointment, start, end time.Time) SlotState {
	state := SlotClosed

	for _, r := range records {
		if !Overlaps(r.StartTime, r.EndTime, start, end) {
			continue
		}

		var candidate SlotState
		switch Status(r.Status) {
		case StatusCompleted:
			candidate = SlotCompleted
		case StatusScheduled:
			candidate = SlotScheduled
		case StatusPending:
			candidate = SlotPending
		case StatusBlocked:
			candidate = SlotBlocked
		case StatusLiberated:
			// liberação parcial não abre a janela inteira
			if r.StartTime.After(start) || r.EndTime.Before(end) {
				continue
			}
			candidate = SlotOpen
		default:
			continue
		}

		if slotRank[candidate] > slotRank[state] {
			state = candidate
		}
	}

	return state
}

// OpenSlots devolve as liberações que ainda podem ser reservadas por
// clientes a partir de from, ordenadas pelo início.
func OpenSlots(records []models.Appointment, from time.Time) []models.Appointment {
	var open []models.Appointment

	for _, r := range records {
		if Status(r.Status) != StatusLiberated {
			continue
		}
		if r.StartTime.Before(from) {
			continue
		}
		if ResolveSlot(records, r.StartTime, r.EndTime) != SlotOpen {
			continue
		}
		open = append(open, r)
	}

	sort.Slice(open, func(i, j int) bool {
		return open[i].StartTime.Before(open[j].StartTime)
	})

	return open
}

// FindAt procura o registro com o status e início informados.
func FindAt(records []models.Appointment, status Status, start time.Time) *models.Appointment {
	for i := range records {
		if Status(records[i].Status) == status && records[i].StartTime.Equal(start) {
			return &records[i]
		}
	}
	return nil
}

// HasActiveOverlap indica se alguma reserva ativa (ignorando skipID) ocupa a janela.
func HasActiveOverlap(records []models.Appointment, start, end time.Time, skipID uint) bool {
	for _, r := range records {
		if r.ID != 0 && r.ID == skipID {
			continue
		}
		if IsActive(Status(r.Status)) && Overlaps(r.StartTime, r.EndTime, start, end) {
			return true
		}
	}
	return false
}
