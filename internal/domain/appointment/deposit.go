package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type DepositStatus string

const (
	DepositNone    DepositStatus = "none"
	DepositPending DepositStatus = "pending"
	DepositPaid    DepositStatus = "paid"
)

// DepositAmount calcula o sinal em centavos, arredondando meio centavo para cima.
func DepositAmount(priceCents int64, percent int) int64 {
	if percent <= 0 || priceCents <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return (priceCents*int64(percent) + 50) / 100
}

// ApplyDeposit define o estado inicial do sinal de uma reserva.
func ApplyDeposit(ap *models.Appointment, priceCents int64, percent int) {
	amount := DepositAmount(priceCents, percent)
	if amount == 0 {
		ap.DepositStatus = string(DepositNone)
		ap.DepositCents = 0
		return
	}

	ap.DepositStatus = string(DepositPending)
	ap.DepositCents = amount
}

func MarkDepositPaid(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) == StatusCancelled {
		return httperr.ErrBusiness("appointment_cancelled")
	}

	switch DepositStatus(ap.DepositStatus) {
	case DepositPaid:
		return httperr.ErrBusiness("deposit_already_paid")
	case DepositPending:
	default:
		return httperr.ErrBusiness("deposit_not_required")
	}

	ap.DepositStatus = string(DepositPaid)
	ap.DepositPaidAt = &now
	return nil
}

// RemainingBalance é o valor ainda a receber depois do sinal pago.
func RemainingBalance(ap *models.Appointment, priceCents int64) int64 {
	remaining := priceCents
	if DepositStatus(ap.DepositStatus) == DepositPaid {
		remaining -= ap.DepositCents
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}
