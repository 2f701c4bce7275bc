package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type EntryLister interface {
	List(ctx context.Context, salonID uint, filter finance.ListFilter) ([]models.FinancialEntry, error)
}

type ClientHistory struct {
	Client       *models.Client           `json:"client"`
	Appointments []dto.AppointmentListDTO `json:"appointments"`
	Entries      []models.FinancialEntry  `json:"entries"`
	Visits       int                      `json:"visits"`
	Cancelled    int                      `json:"cancelled"`
	PaidCents    int64                    `json:"paid_cents"`
	OpenCents    int64                    `json:"open_cents"`
}

// GetClientHistory reúne atendimentos e saldo financeiro de um cliente.
type GetClientHistory struct {
	Deps
	entries EntryLister
}

func NewGetClientHistory(deps Deps, entries EntryLister) *GetClientHistory {
	return &GetClientHistory{Deps: deps, entries: entries}
}

func (uc *GetClientHistory) Execute(
	ctx context.Context,
	salonID uint,
	clientID uint,
) (*ClientHistory, error) {

	client, err := uc.Repo.GetClient(ctx, salonID, clientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	appointments, err := uc.Repo.ListClientAppointments(ctx, salonID, clientID)
	if err != nil {
		return nil, err
	}

	out := &ClientHistory{
		Client:       client,
		Appointments: dto.AppointmentListFrom(appointments),
		Entries:      []models.FinancialEntry{},
	}

	for _, ap := range appointments {
		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			out.Visits++
		case domain.StatusCancelled:
			out.Cancelled++
		}
	}

	if uc.entries == nil {
		return out, nil
	}

	entries, err := uc.entries.List(ctx, salonID, finance.ListFilter{
		Kind:     string(finance.KindReceivable),
		ClientID: clientID,
	})
	if err != nil {
		return nil, err
	}

	if len(entries) > 0 {
		out.Entries = entries
	}
	for _, e := range entries {
		if finance.Status(e.Status) == finance.StatusPaid {
			out.PaidCents += e.AmountCents
		} else {
			out.OpenCents += e.AmountCents
		}
	}

	return out, nil
}
