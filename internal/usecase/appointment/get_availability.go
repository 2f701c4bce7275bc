package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// GetAvailability monta a grade do expediente descontando reservas e bloqueios.
type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.ProfessionalID, int(in.Date.Weekday()))
	if err != nil || !wh.Active {
		return []domain.TimeSlot{}, nil
	}

	window, ok := domain.WindowFor(wh, in.Date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	records, err := uc.repo.ListOverlapping(
		ctx,
		in.ProfessionalID,
		window.Start,
		window.End,
	)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute

	return domain.BuildGrid(wh, in.Date, duration, domain.Busy(records)), nil
}
