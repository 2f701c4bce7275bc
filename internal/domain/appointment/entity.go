package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = reason
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusScheduled)
	ap.ConfirmedAt = &now
	return nil
}

// Claim converte uma vaga liberada em reserva pendente do cliente.
// O serviço precisa caber na janela liberada.
func Claim(ap *models.Appointment, clientID uint, service *models.Service) error {
	if err := CanTransition(Status(ap.Status), StatusPending); err != nil {
		return httperr.ErrBusiness("slot_not_available")
	}

	end, err := fitService(ap, service)
	if err != nil {
		return err
	}

	ap.ClientID = &clientID
	ap.ServiceID = &service.ID
	ap.EndTime = end
	ap.Status = string(StatusPending)
	ap.Source = string(SourceCustomer)
	ap.FromLiberation = true
	return nil
}

// Occupy é o equivalente de Claim para a equipe: a vaga liberada vira
// agendamento já confirmado.
func Occupy(ap *models.Appointment, clientID uint, service *models.Service, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusScheduled); err != nil {
		return err
	}

	end, err := fitService(ap, service)
	if err != nil {
		return err
	}

	ap.ClientID = &clientID
	ap.ServiceID = &service.ID
	ap.EndTime = end
	ap.Status = string(StatusScheduled)
	ap.Source = string(SourceStaff)
	ap.FromLiberation = true
	ap.ConfirmedAt = &now
	return nil
}

func Block(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusBlocked); err != nil {
		return httperr.ErrBusiness("slot_occupied")
	}
	ap.Status = string(StatusBlocked)
	return nil
}

func Liberate(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusLiberated); err != nil {
		return httperr.ErrBusiness("slot_occupied")
	}
	ap.Status = string(StatusLiberated)
	return nil
}

// NewPlaceholder monta um registro de bloqueio ou liberação.
func NewPlaceholder(salonID, professionalID uint, start, end time.Time, status Status) (*models.Appointment, error) {
	if !IsPlaceholder(status) {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	if !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_window")
	}

	return &models.Appointment{
		SalonID:        salonID,
		ProfessionalID: professionalID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(status),
		Source:         string(SourceStaff),
		DepositStatus:  string(DepositNone),
	}, nil
}

// Reopen devolve à agenda a janela de uma reserva cancelada que veio
// de uma vaga liberada.
func Reopen(cancelled *models.Appointment, now time.Time) (*models.Appointment, error) {
	if Status(cancelled.Status) != StatusCancelled || !cancelled.FromLiberation {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	if !cancelled.StartTime.After(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	return NewPlaceholder(
		cancelled.SalonID,
		cancelled.ProfessionalID,
		cancelled.StartTime,
		cancelled.EndTime,
		StatusLiberated,
	)
}

func fitService(ap *models.Appointment, service *models.Service) (time.Time, error) {
	if service == nil || service.DurationMin <= 0 {
		return time.Time{}, httperr.ErrBusiness("service_not_found")
	}

	end := ap.StartTime.Add(time.Duration(service.DurationMin) * time.Minute)
	if end.After(ap.EndTime) {
		return time.Time{}, httperr.ErrBusiness("service_too_long")
	}
	return end, nil
}
