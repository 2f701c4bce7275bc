package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreatePrivateAppointmentInput struct {
	SalonID        uint
	ProfessionalID uint
	ActorID        uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreatePrivateAppointment struct {
	Deps
}

func NewCreatePrivateAppointment(deps Deps) *CreatePrivateAppointment {
	return &CreatePrivateAppointment{Deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePrivateAppointment) Execute(
	ctx context.Context,
	in CreatePrivateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Salão
	// --------------------------------------------------
	salon, err := uc.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	if _, err := uc.Repo.GetProfessional(ctx, in.SalonID, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone do salão
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(salon.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.now(salon.Timezone)
	if start.Before(now) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3️⃣ Serviço
	// --------------------------------------------------
	service, err := uc.Repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 4️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.Repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Reconciliação com a agenda (transação)
	// --------------------------------------------------
	var created *models.Appointment

	err = uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		records, err := tx.ListOverlapping(ctx, in.ProfessionalID, start, end)
		if err != nil {
			return err
		}

		// vaga liberada no mesmo horário: a equipe ocupa a liberação
		if slot := domain.FindAt(records, domain.StatusLiberated, start); slot != nil {
			if domain.ResolveSlot(records, slot.StartTime, slot.EndTime) != domain.SlotOpen {
				return httperr.ErrBusiness("time_conflict")
			}
			if err := domain.Occupy(slot, client.ID, service, now); err != nil {
				return err
			}
			slot.Notes = in.Notes

			if err := tx.UpdateAppointment(ctx, slot); err != nil {
				return err
			}
			created = slot
			return nil
		}

		for _, r := range records {
			if domain.Status(r.Status) == domain.StatusBlocked {
				return httperr.ErrBusiness("slot_blocked")
			}
		}

		wh, err := tx.GetWorkingHours(ctx, in.ProfessionalID, int(start.Weekday()))
		if err != nil || !domain.IsWithinWorkingHours(wh, start, end) {
			return httperr.ErrBusiness("outside_working_hours")
		}

		if err := tx.AssertNoTimeConflict(ctx, in.ProfessionalID, start, end, 0); err != nil {
			return err
		}

		clientID := client.ID
		serviceID := service.ID
		ap := &models.Appointment{
			SalonID:        in.SalonID,
			ProfessionalID: in.ProfessionalID,
			ClientID:       &clientID,
			ServiceID:      &serviceID,
			StartTime:      start,
			EndTime:        end,
			Status:         string(domain.StatusScheduled),
			Source:         string(domain.SourceStaff),
			DepositStatus:  string(domain.DepositNone),
			Notes:          in.Notes,
			ConfirmedAt:    &now,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness("time_conflict")
			}
			return err
		}
		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	uc.changed(created, &in.ActorID, "appointment_created", nil)

	return created, nil
}
