package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	waitlistdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/waitlist"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// WaitlistSource é o recorte do repositório de espera usado ao liberar horário.
type WaitlistSource interface {
	ListWaitingForDate(ctx context.Context, salonID uint, date string) ([]models.WaitlistEntry, error)
}

type LiberateSlotOutput struct {
	Slot            *models.Appointment    `json:"slot"`
	WaitlistMatches []models.WaitlistEntry `json:"waitlist_matches"`
}

type LiberateSlot struct {
	Deps
	waitlist WaitlistSource
}

func NewLiberateSlot(deps Deps, waitlist WaitlistSource) *LiberateSlot {
	return &LiberateSlot{Deps: deps, waitlist: waitlist}
}

func (uc *LiberateSlot) Execute(
	ctx context.Context,
	in SlotWindowInput,
) (*LiberateSlotOutput, error) {

	_, start, end, err := uc.resolveWindow(ctx, in)
	if err != nil {
		return nil, err
	}

	var slot *models.Appointment

	err = uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		records, err := tx.ListOverlapping(ctx, in.ProfessionalID, start, end)
		if err != nil {
			return err
		}

		if domain.HasActiveOverlap(records, start, end, 0) {
			return httperr.ErrBusiness("slot_occupied")
		}

		for i := range records {
			r := &records[i]
			switch domain.Status(r.Status) {
			case domain.StatusLiberated:
				return httperr.ErrBusiness("slot_already_liberated")

			case domain.StatusBlocked:
				// bloqueio com a mesma janela vira liberação
				if !r.StartTime.Equal(start) || !r.EndTime.Equal(end) {
					return httperr.ErrBusiness("slot_blocked")
				}
				if err := domain.Liberate(r); err != nil {
					return err
				}
				if err := tx.UpdateAppointment(ctx, r); err != nil {
					return err
				}
				slot = r
				return nil
			}
		}

		ap, err := domain.NewPlaceholder(in.SalonID, in.ProfessionalID, start, end, domain.StatusLiberated)
		if err != nil {
			return err
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		slot = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.changed(slot, &in.ActorID, "slot_liberated", nil)

	out := &LiberateSlotOutput{Slot: slot, WaitlistMatches: []models.WaitlistEntry{}}

	if uc.waitlist != nil {
		entries, err := uc.waitlist.ListWaitingForDate(ctx, in.SalonID, in.Date)
		if err != nil {
			// a liberação já foi gravada; a lista de espera é informativa
			uc.logger().Warn("waitlist lookup failed",
				zap.Uint("salon_id", in.SalonID),
				zap.Error(err),
			)
			return out, nil
		}
		out.WaitlistMatches = waitlistdomain.Matches(entries, in.Date, in.ProfessionalID)
	}

	return out, nil
}
