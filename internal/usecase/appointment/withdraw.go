package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WithdrawSlotInput struct {
	SalonID uint
	SlotID  uint
	ActorID uint
}

// WithdrawSlot remove uma liberação ou bloqueio ainda não usado.
type WithdrawSlot struct {
	Deps
}

func NewWithdrawSlot(deps Deps) *WithdrawSlot {
	return &WithdrawSlot{Deps: deps}
}

func (uc *WithdrawSlot) Execute(ctx context.Context, in WithdrawSlotInput) error {
	var ap *models.Appointment
	err := uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockAppointment(ctx, in.SalonID, in.SlotID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		if err := domain.CanWithdraw(domain.Status(locked.Status)); err != nil {
			return err
		}

		ap = locked
		return tx.DeleteAppointment(ctx, ap)
	})
	if err != nil {
		return err
	}

	uc.record(auditEvent(ap, &in.ActorID, "slot_withdrawn"))
	uc.publish(ap, "slot_withdrawn")

	return nil
}
