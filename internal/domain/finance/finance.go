package finance

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Kind string

const (
	KindReceivable Kind = "receivable"
	KindPayable    Kind = "payable"
)

type Status string

const (
	StatusOpen Status = "open"
	StatusPaid Status = "paid"
)

func (k Kind) Valid() bool {
	return k == KindReceivable || k == KindPayable
}

func Validate(e *models.FinancialEntry) error {
	if !Kind(e.Kind).Valid() {
		return httperr.ErrBusiness("invalid_kind")
	}
	if e.AmountCents <= 0 {
		return httperr.ErrBusiness("invalid_amount")
	}
	if strings.TrimSpace(e.Description) == "" {
		return httperr.ErrBusiness("missing_description")
	}
	if e.DueDate.IsZero() {
		return httperr.ErrBusiness("missing_due_date")
	}
	if e.Status == "" {
		e.Status = string(StatusOpen)
	}
	return nil
}

func MarkPaid(e *models.FinancialEntry, now time.Time) error {
	if Status(e.Status) == StatusPaid {
		return httperr.ErrBusiness("already_paid")
	}
	e.Status = string(StatusPaid)
	e.PaidAt = &now
	return nil
}

// Summary totaliza lançamentos em centavos.
type Summary struct {
	ReceivableOpen    int64 `json:"receivable_open"`
	ReceivablePaid    int64 `json:"receivable_paid"`
	ReceivableOverdue int64 `json:"receivable_overdue"`
	PayableOpen       int64 `json:"payable_open"`
	PayablePaid       int64 `json:"payable_paid"`
	PayableOverdue    int64 `json:"payable_overdue"`
	Balance           int64 `json:"balance"`
}

// Summarize considera vencido o lançamento aberto com vencimento antes do dia de now.
func Summarize(entries []models.FinancialEntry, now time.Time) Summary {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var s Summary
	for _, e := range entries {
		open := Status(e.Status) != StatusPaid
		overdue := open && e.DueDate.Before(today)

		switch Kind(e.Kind) {
		case KindReceivable:
			if open {
				s.ReceivableOpen += e.AmountCents
			} else {
				s.ReceivablePaid += e.AmountCents
			}
			if overdue {
				s.ReceivableOverdue += e.AmountCents
			}
		case KindPayable:
			if open {
				s.PayableOpen += e.AmountCents
			} else {
				s.PayablePaid += e.AmountCents
			}
			if overdue {
				s.PayableOverdue += e.AmountCents
			}
		}
	}

	s.Balance = s.ReceivablePaid - s.PayablePaid
	return s
}

type ListFilter struct {
	Kind     string
	Status   string
	ClientID uint
	From     time.Time
	To       time.Time
}

type Repository interface {
	Create(ctx context.Context, e *models.FinancialEntry) error
	Get(ctx context.Context, salonID, id uint) (*models.FinancialEntry, error)
	Update(ctx context.Context, e *models.FinancialEntry) error
	List(ctx context.Context, salonID uint, filter ListFilter) ([]models.FinancialEntry, error)
}
