package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BlockSlot struct {
	Deps
}

func NewBlockSlot(deps Deps) *BlockSlot {
	return &BlockSlot{Deps: deps}
}

// Execute bloqueia a janela. Uma liberação com a mesma janela é convertida;
// liberações parciais permanecem e o bloqueio prevalece na reconciliação.
func (uc *BlockSlot) Execute(
	ctx context.Context,
	in SlotWindowInput,
) (*models.Appointment, error) {

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

		for _, r := range records {
			if domain.Status(r.Status) == domain.StatusBlocked {
				return httperr.ErrBusiness("slot_already_blocked")
			}
		}

		if lib := domain.FindAt(records, domain.StatusLiberated, start); lib != nil && lib.EndTime.Equal(end) {
			if err := domain.Block(lib); err != nil {
				return err
			}
			if err := tx.UpdateAppointment(ctx, lib); err != nil {
				return err
			}
			slot = lib
			return nil
		}

		ap, err := domain.NewPlaceholder(in.SalonID, in.ProfessionalID, start, end, domain.StatusBlocked)
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

	uc.changed(slot, &in.ActorID, "slot_blocked", nil)

	return slot, nil
}
