package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// SlotLocker segura a vaga enquanto a reserva é gravada.
type SlotLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

type DepositGateway interface {
	CreateCheckout(ctx context.Context, in payment.CheckoutInput) (payment.Checkout, error)
}

// ======================================================
// INPUT
// ======================================================

// RequestBookingInput identifica a vaga pelo ID ou por profissional + data + hora.
type RequestBookingInput struct {
	SalonID  uint
	ClientID uint

	SlotID uint

	ProfessionalID uint
	Date           string
	Time           string

	ServiceID uint
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type RequestBooking struct {
	Deps
	locker  SlotLocker
	gateway DepositGateway
	holdTTL time.Duration
}

func NewRequestBooking(deps Deps, locker SlotLocker, gateway DepositGateway, holdTTL time.Duration) *RequestBooking {
	if holdTTL <= 0 {
		holdTTL = 30 * time.Second
	}
	return &RequestBooking{
		Deps:    deps,
		locker:  locker,
		gateway: gateway,
		holdTTL: holdTTL,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RequestBooking) Execute(
	ctx context.Context,
	in RequestBookingInput,
) (*models.Appointment, error) {

	ap, err := uc.execute(ctx, in)
	if err != nil {
		outcome := httperr.BusinessCode(err)
		if outcome == "" {
			outcome = "error"
		}
		uc.Metrics.Booking(outcome)
		return nil, err
	}

	uc.Metrics.Booking("accepted")
	return ap, nil
}

func (uc *RequestBooking) execute(
	ctx context.Context,
	in RequestBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Salão / cliente / serviço
	// --------------------------------------------------
	salon, err := uc.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	client, err := uc.Repo.GetClient(ctx, in.SalonID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	service, err := uc.Repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Vaga
	// --------------------------------------------------
	slot, err := uc.findSlot(ctx, salon, in)
	if err != nil {
		return nil, err
	}

	now := uc.now(salon.Timezone)
	if slot.StartTime.Before(now.Add(minAdvance(salon))) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3️⃣ Trava da vaga
	// --------------------------------------------------
	if uc.locker != nil {
		release, ok, err := uc.locker.Acquire(ctx, lock.SlotKey(slot.ProfessionalID, slot.StartTime), uc.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("slot_not_available")
		}
		defer release()
	}

	// --------------------------------------------------
	// 4️⃣ Reserva (transação)
	// --------------------------------------------------
	err = uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		records, err := tx.ListOverlapping(ctx, slot.ProfessionalID, slot.StartTime, slot.EndTime)
		if err != nil {
			return err
		}

		if domain.ResolveSlot(records, slot.StartTime, slot.EndTime) != domain.SlotOpen {
			return httperr.ErrBusiness("slot_not_available")
		}

		if err := domain.Claim(slot, client.ID, service); err != nil {
			return err
		}
		slot.Notes = in.Notes

		domain.ApplyDeposit(slot, service.PriceCents, salon.DepositPercent)
		if slot.DepositStatus == string(domain.DepositPending) {
			slot.DepositReference = uuid.NewString()
		}

		claimed, err := tx.ClaimSlot(ctx, slot)
		if err != nil {
			return err
		}
		if !claimed {
			return httperr.ErrBusiness("slot_not_available")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Sinal
	// --------------------------------------------------
	if slot.DepositStatus == string(domain.DepositPending) && uc.gateway != nil {
		checkout, err := uc.gateway.CreateCheckout(ctx, payment.CheckoutInput{
			Reference:   slot.DepositReference,
			Title:       fmt.Sprintf("Sinal - %s", service.Name),
			AmountCents: slot.DepositCents,
		})
		if err != nil {
			// a reserva continua pendente; o sinal pode ser baixado pela equipe
			uc.logger().Warn("deposit checkout failed",
				zap.Uint("appointment_id", slot.ID),
				zap.Error(err),
			)
		} else {
			saved, err := uc.Repo.SetDepositCheckout(ctx, slot.ID, checkout.URL)
			if err != nil {
				return nil, err
			}
			if saved {
				slot.DepositCheckout = checkout.URL
			} else {
				// a equipe mudou a reserva durante a chamada ao gateway
				current, err := uc.Repo.GetAppointment(ctx, slot.SalonID, slot.ID)
				if err != nil {
					return nil, err
				}
				slot = current
			}
		}
	}

	uc.changed(slot, nil, "booking_requested", map[string]any{
		"client_id":  client.ID,
		"service_id": service.ID,
	})

	return slot, nil
}

func (uc *RequestBooking) findSlot(
	ctx context.Context,
	salon *models.Salon,
	in RequestBookingInput,
) (*models.Appointment, error) {

	if in.SlotID != 0 {
		slot, err := uc.Repo.GetAppointment(ctx, salon.ID, in.SlotID)
		if err != nil || domain.Status(slot.Status) != domain.StatusLiberated {
			return nil, httperr.ErrBusiness("slot_not_available")
		}
		return slot, nil
	}

	start, err := timezone.ParseDateTime(salon.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	professionalID := in.ProfessionalID
	if professionalID == 0 {
		pro, err := uc.Repo.DefaultProfessional(ctx, salon.ID)
		if err != nil {
			return nil, httperr.ErrBusiness("professional_not_found")
		}
		professionalID = pro.ID
	}

	records, err := uc.Repo.ListOverlapping(ctx, professionalID, start, start.Add(time.Minute))
	if err != nil {
		return nil, err
	}

	found := domain.FindAt(records, domain.StatusLiberated, start)
	if found == nil {
		return nil, httperr.ErrBusiness("slot_not_available")
	}

	slot := *found
	return &slot, nil
}
