package finance

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/export"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Service struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewService(repo domain.Repository, dispatcher *audit.Dispatcher, clock timezone.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, audit: dispatcher, clock: clock}
}

// ======================================================
// CREATE
// ======================================================

type CreateEntryInput struct {
	SalonID  uint
	ActorID  uint
	Timezone string

	Kind        string
	Description string
	AmountCents int64
	DueDate     string
	ClientID    *uint
}

func (s *Service) Create(ctx context.Context, in CreateEntryInput) (*models.FinancialEntry, error) {
	entry := &models.FinancialEntry{
		SalonID:     in.SalonID,
		Kind:        in.Kind,
		Description: strings.TrimSpace(in.Description),
		AmountCents: in.AmountCents,
		ClientID:    in.ClientID,
	}

	if in.DueDate != "" {
		due, err := timezone.ParseDate(in.Timezone, in.DueDate)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		entry.DueDate = due
	}

	if err := domain.Validate(entry); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.record(entry, in.ActorID, "financial_entry_created")
	return entry, nil
}

// ======================================================
// PAY
// ======================================================

func (s *Service) MarkPaid(ctx context.Context, salonID, entryID, actorID uint) (*models.FinancialEntry, error) {
	entry, err := s.repo.Get(ctx, salonID, entryID)
	if err != nil {
		return nil, httperr.ErrBusiness("entry_not_found")
	}

	if err := domain.MarkPaid(entry, s.clock()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.record(entry, actorID, "financial_entry_paid")
	return entry, nil
}

// ======================================================
// QUERIES
// ======================================================

// Period converte datas YYYY-MM-DD em [from, to+1d). Vazio usa o mês corrente.
func (s *Service) Period(tz, from, to string) (time.Time, time.Time, error) {
	now := s.clock().In(timezone.Location(tz))

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	if from != "" {
		parsed, err := timezone.ParseDate(tz, from)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date")
		}
		start = parsed
	}
	if to != "" {
		parsed, err := timezone.ParseDate(tz, to)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date")
		}
		end = parsed.AddDate(0, 0, 1)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_range")
	}
	return start, end, nil
}

func (s *Service) List(ctx context.Context, salonID uint, filter domain.ListFilter) ([]models.FinancialEntry, error) {
	if filter.Kind != "" && !domain.Kind(filter.Kind).Valid() {
		return nil, httperr.ErrBusiness("invalid_kind")
	}
	return s.repo.List(ctx, salonID, filter)
}

func (s *Service) Summary(ctx context.Context, salonID uint, filter domain.ListFilter) (domain.Summary, error) {
	entries, err := s.List(ctx, salonID, filter)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(entries, s.clock()), nil
}

// Export gera a planilha dos lançamentos do filtro.
func (s *Service) Export(ctx context.Context, salonID uint, filter domain.ListFilter) ([]byte, error) {
	entries, err := s.List(ctx, salonID, filter)
	if err != nil {
		return nil, err
	}
	return export.FinancialEntries(entries)
}

func (s *Service) record(e *models.FinancialEntry, actorID uint, action string) {
	if s.audit == nil {
		return
	}
	id := e.ID
	s.audit.Dispatch(audit.Event{
		SalonID:  e.SalonID,
		UserID:   &actorID,
		Action:   action,
		Entity:   "financial_entry",
		EntityID: &id,
		Metadata: map[string]any{"amount_cents": e.AmountCents, "kind": e.Kind},
	})
}
