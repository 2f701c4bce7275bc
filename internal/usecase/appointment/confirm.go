package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ConfirmAppointmentInput struct {
	SalonID       uint
	AppointmentID uint
	ActorID       uint
}

type ConfirmAppointment struct {
	Deps
}

func NewConfirmAppointment(deps Deps) *ConfirmAppointment {
	return &ConfirmAppointment{Deps: deps}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	in ConfirmAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	var ap *models.Appointment
	err = uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockAppointment(ctx, in.SalonID, in.AppointmentID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		if err := domain.Confirm(locked, uc.now(salon.Timezone)); err != nil {
			return err
		}

		ap = locked
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.changed(ap, &in.ActorID, "appointment_confirmed", nil)

	return ap, nil
}
