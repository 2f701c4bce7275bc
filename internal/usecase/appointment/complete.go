package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CompleteAppointmentInput struct {
	SalonID       uint
	AppointmentID uint
	ActorID       uint
}

// CompleteAppointment grava o status e os recebíveis na mesma transação.
type CompleteAppointment struct {
	Deps
}

func NewCompleteAppointment(deps Deps) *CompleteAppointment {
	return &CompleteAppointment{Deps: deps}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	now := uc.now(salon.Timezone)

	var ap *models.Appointment
	err = uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockAppointment(ctx, in.SalonID, in.AppointmentID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		if err := domain.Complete(locked, now); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, locked); err != nil {
			return err
		}

		entries := receivables(locked, now)
		for i := range entries {
			if err := tx.CreateFinancialEntry(ctx, &entries[i]); err != nil {
				return fmt.Errorf("record receivable: %w", err)
			}
		}

		ap = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.changed(ap, &in.ActorID, "appointment_completed", nil)

	return ap, nil
}

// receivables separa o sinal já pago do saldo restante do serviço.
func receivables(ap *models.Appointment, now time.Time) []models.FinancialEntry {
	if ap.Service == nil {
		return nil
	}

	var out []models.FinancialEntry
	appointmentID := ap.ID

	base := models.FinancialEntry{
		SalonID:       ap.SalonID,
		Kind:          string(finance.KindReceivable),
		DueDate:       now,
		ClientID:      ap.ClientID,
		AppointmentID: &appointmentID,
	}

	if ap.DepositStatus == string(domain.DepositPaid) && ap.DepositCents > 0 {
		deposit := base
		deposit.Description = fmt.Sprintf("Sinal - %s", ap.Service.Name)
		deposit.AmountCents = ap.DepositCents
		deposit.Status = string(finance.StatusPaid)
		paidAt := now
		if ap.DepositPaidAt != nil {
			paidAt = *ap.DepositPaidAt
		}
		deposit.PaidAt = &paidAt
		out = append(out, deposit)
	}

	if remaining := domain.RemainingBalance(ap, ap.Service.PriceCents); remaining > 0 {
		rest := base
		rest.Description = ap.Service.Name
		rest.AmountCents = remaining
		rest.Status = string(finance.StatusOpen)
		out = append(out, rest)
	}

	return out
}
