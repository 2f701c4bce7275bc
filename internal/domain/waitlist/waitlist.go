package waitlist

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusContacted Status = "contacted"
	StatusBooked    Status = "booked"
	StatusDismissed Status = "dismissed"
)

var transitions = map[Status][]Status{
	StatusWaiting:   {StatusContacted, StatusBooked, StatusDismissed},
	StatusContacted: {StatusBooked, StatusDismissed},
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// Apply muda o status da entrada registrando quando houve contato e
// quando ela foi encerrada.
func Apply(entry *models.WaitlistEntry, to Status, now time.Time) error {
	if err := CanTransition(Status(entry.Status), to); err != nil {
		return err
	}

	entry.Status = string(to)
	switch to {
	case StatusContacted:
		entry.ContactedAt = &now
	case StatusBooked, StatusDismissed:
		entry.ResolvedAt = &now
	}
	return nil
}

// Matches devolve as entradas aguardando para a data, na ordem de chegada.
// Entradas sem profissional preferido servem para qualquer um.
func Matches(entries []models.WaitlistEntry, date string, professionalID uint) []models.WaitlistEntry {
	var out []models.WaitlistEntry
	for _, e := range entries {
		if Status(e.Status) != StatusWaiting || e.DesiredDate != date {
			continue
		}
		if e.ProfessionalID != nil && professionalID != 0 && *e.ProfessionalID != professionalID {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type ListFilter struct {
	Date   string
	Status string
}

type Repository interface {
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	Get(ctx context.Context, salonID, id uint) (*models.WaitlistEntry, error)
	Update(ctx context.Context, entry *models.WaitlistEntry) error
	List(ctx context.Context, salonID uint, filter ListFilter) ([]models.WaitlistEntry, error)
	HasWaiting(ctx context.Context, salonID, clientID, serviceID uint, date string) (bool, error)
	ListWaitingForDate(ctx context.Context, salonID uint, date string) ([]models.WaitlistEntry, error)
}
