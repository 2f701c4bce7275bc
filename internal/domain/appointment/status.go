package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBlocked   Status = "blocked"
	StatusLiberated Status = "liberated"
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Source string

const (
	SourceStaff    Source = "staff"
	SourceCustomer Source = "customer"
)

// transitions lista, para cada status, os destinos permitidos.
// Status fora do mapa são terminais.
var transitions = map[Status][]Status{
	StatusLiberated: {StatusBlocked, StatusPending, StatusScheduled},
	StatusBlocked:   {StatusLiberated},
	StatusPending:   {StatusScheduled, StatusCancelled},
	StatusScheduled: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusBlocked, StatusLiberated, StatusPending,
		StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanWithdraw: só marcações de agenda (bloqueio/liberação) podem ser removidas.
func CanWithdraw(current Status) error {
	if !IsPlaceholder(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// IsActive indica status que ocupam o horário de um profissional.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusScheduled || s == StatusCompleted
}

func IsPlaceholder(s Status) bool {
	return s == StatusBlocked || s == StatusLiberated
}

// ActiveStatuses em formato de string para consultas.
func ActiveStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusScheduled),
		string(StatusCompleted),
	}
}
