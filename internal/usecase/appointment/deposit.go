package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// BAIXA MANUAL
// ======================================================

type MarkDepositPaidInput struct {
	SalonID       uint
	AppointmentID uint
	ActorID       uint
}

type MarkDepositPaid struct {
	Deps
}

func NewMarkDepositPaid(deps Deps) *MarkDepositPaid {
	return &MarkDepositPaid{Deps: deps}
}

func (uc *MarkDepositPaid) Execute(
	ctx context.Context,
	in MarkDepositPaidInput,
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

		if err := domain.MarkDepositPaid(locked, uc.now(salon.Timezone)); err != nil {
			return err
		}

		ap = locked
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.changed(ap, &in.ActorID, "deposit_paid", map[string]any{"manual": true})

	return ap, nil
}

// ======================================================
// WEBHOOK
// ======================================================

type PaymentLookup interface {
	PaymentInfo(ctx context.Context, paymentID string) (payment.Info, error)
}

// HandlePaymentNotification consulta o pagamento notificado e baixa o sinal.
// Notificações repetidas ou de pagamentos não aprovados são ignoradas.
type HandlePaymentNotification struct {
	Deps
	payments PaymentLookup
}

func NewHandlePaymentNotification(deps Deps, payments PaymentLookup) *HandlePaymentNotification {
	return &HandlePaymentNotification{Deps: deps, payments: payments}
}

func (uc *HandlePaymentNotification) Execute(ctx context.Context, paymentID string) error {
	if uc.payments == nil {
		return httperr.ErrBusiness("payments_disabled")
	}
	if paymentID == "" {
		return httperr.ErrBusiness("invalid_payment")
	}

	info, err := uc.payments.PaymentInfo(ctx, paymentID)
	if err != nil {
		return err
	}

	if !info.Approved() || info.Reference == "" {
		uc.logger().Info("payment notification ignored",
			zap.String("payment_id", paymentID),
			zap.String("status", info.Status),
		)
		return nil
	}

	found, err := uc.Repo.GetAppointmentByDepositReference(ctx, info.Reference)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	salon, err := uc.Repo.GetSalonByID(ctx, found.SalonID)
	if err != nil {
		return httperr.ErrBusiness("salon_not_found")
	}

	var ap *models.Appointment
	err = uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockAppointment(ctx, found.SalonID, found.ID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		if err := domain.MarkDepositPaid(locked, uc.now(salon.Timezone)); err != nil {
			return err
		}

		ap = locked
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.BusinessCode(err) == "deposit_already_paid" {
			return nil
		}
		return err
	}

	uc.changed(ap, nil, "deposit_paid", map[string]any{"payment_id": paymentID})

	return nil
}
