package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// SlotWindowInput descreve a janela usada para liberar ou bloquear horário.
// End tem precedência sobre DurationMin.
type SlotWindowInput struct {
	SalonID        uint
	ProfessionalID uint
	ActorID        uint

	Date        string
	Start       string
	End         string
	DurationMin int
}

func (d Deps) resolveWindow(
	ctx context.Context,
	in SlotWindowInput,
) (*models.Salon, time.Time, time.Time, error) {

	salon, err := d.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, time.Time{}, time.Time{}, httperr.ErrBusiness("salon_not_found")
	}

	if _, err := d.Repo.GetProfessional(ctx, in.SalonID, in.ProfessionalID); err != nil {
		return nil, time.Time{}, time.Time{}, httperr.ErrBusiness("professional_not_found")
	}

	start, err := timezone.ParseDateTime(salon.Timezone, in.Date, in.Start)
	if err != nil {
		return nil, time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}

	var end time.Time
	switch {
	case in.End != "":
		end, err = timezone.ParseDateTime(salon.Timezone, in.Date, in.End)
		if err != nil {
			return nil, time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
		}
	case in.DurationMin > 0:
		end = start.Add(time.Duration(in.DurationMin) * time.Minute)
	default:
		return nil, time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_window")
	}

	if !end.After(start) {
		return nil, time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_window")
	}

	if !start.After(d.now(salon.Timezone)) {
		return nil, time.Time{}, time.Time{}, httperr.ErrBusiness("slot_in_past")
	}

	return salon, start, end, nil
}
