package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// CancelAppointmentInput serve equipe (ActorID) e cliente (ClientID).
// Cancelamento feito pelo cliente sempre devolve a vaga à agenda quando
// a reserva ocupou uma vaga liberada.
type CancelAppointmentInput struct {
	SalonID       uint
	AppointmentID uint

	ActorID  uint
	ClientID uint

	Reason string
	Reopen bool
}

type CancelAppointmentOutput struct {
	Appointment *models.Appointment `json:"appointment"`
	Reopened    *models.Appointment `json:"reopened,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CancelAppointment struct {
	Deps
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{Deps: deps}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*CancelAppointmentOutput, error) {

	salon, err := uc.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	now := uc.now(salon.Timezone)
	byClient := in.ClientID != 0
	reopen := in.Reopen || byClient

	out := &CancelAppointmentOutput{}

	err = uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.LockAppointment(ctx, in.SalonID, in.AppointmentID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		if byClient && (ap.ClientID == nil || *ap.ClientID != in.ClientID) {
			return httperr.ErrBusiness("appointment_not_found")
		}

		if err := domain.Cancel(ap, now, in.Reason); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		out.Appointment = ap

		if !reopen || !ap.FromLiberation || !ap.StartTime.After(now) {
			return nil
		}

		records, err := tx.ListOverlapping(ctx, ap.ProfessionalID, ap.StartTime, ap.EndTime)
		if err != nil {
			return err
		}
		if domain.ResolveSlot(records, ap.StartTime, ap.EndTime) != domain.SlotClosed {
			// janela já ocupada ou bloqueada por outro registro
			return nil
		}

		slot, err := domain.Reopen(ap, now)
		if err != nil {
			return err
		}
		if err := tx.CreateAppointment(ctx, slot); err != nil {
			return err
		}
		out.Reopened = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	var actor *uint
	if !byClient {
		actor = &in.ActorID
	}

	uc.changed(out.Appointment, actor, "appointment_cancelled", map[string]any{
		"reason":    in.Reason,
		"by_client": byClient,
	})

	if out.Reopened != nil {
		uc.changed(out.Reopened, actor, "slot_liberated", nil)
	}

	return out, nil
}
