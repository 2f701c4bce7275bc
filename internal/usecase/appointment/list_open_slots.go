package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const maxOpenSlotsRange = 31

type ListOpenSlotsInput struct {
	SalonID        uint
	ProfessionalID uint
	ServiceID      uint

	// From e To em YYYY-MM-DD; vazio usa hoje e From+7.
	From string
	To   string
}

// ListOpenSlots lista as vagas liberadas que um cliente ainda pode reservar.
type ListOpenSlots struct {
	Deps
}

func NewListOpenSlots(deps Deps) *ListOpenSlots {
	return &ListOpenSlots{Deps: deps}
}

func (uc *ListOpenSlots) Execute(
	ctx context.Context,
	in ListOpenSlotsInput,
) ([]dto.OpenSlotDTO, error) {

	salon, err := uc.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	now := uc.now(salon.Timezone)

	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if in.From != "" {
		if from, err = timezone.ParseDate(salon.Timezone, in.From); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}

	to := from.AddDate(0, 0, 7)
	if in.To != "" {
		parsed, err := timezone.ParseDate(salon.Timezone, in.To)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		to = parsed.AddDate(0, 0, 1)
	}

	if !to.After(from) || to.Sub(from) > maxOpenSlotsRange*24*time.Hour {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	records, err := uc.Repo.ListSalonRecords(ctx, in.SalonID, in.ProfessionalID, from, to)
	if err != nil {
		return nil, err
	}

	var minDuration time.Duration
	if in.ServiceID != 0 {
		service, err := uc.Repo.GetService(ctx, in.SalonID, in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		minDuration = time.Duration(service.DurationMin) * time.Minute
	}

	earliest := now.Add(minAdvance(salon))

	out := []dto.OpenSlotDTO{}
	for _, group := range byProfessional(records) {
		for _, slot := range domain.OpenSlots(group, earliest) {
			if slot.EndTime.Sub(slot.StartTime) < minDuration {
				continue
			}
			out = append(out, dto.OpenSlot(slot))
		}
	}

	sortOpenSlots(out)

	return out, nil
}

func byProfessional(records []models.Appointment) map[uint][]models.Appointment {
	out := map[uint][]models.Appointment{}
	for _, r := range records {
		out[r.ProfessionalID] = append(out[r.ProfessionalID], r)
	}
	return out
}

func sortOpenSlots(slots []dto.OpenSlotDTO) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime.Equal(slots[j].StartTime) {
			return slots[i].ProfessionalID < slots[j].ProfessionalID
		}
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}
