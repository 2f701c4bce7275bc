package finance

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var now = time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)

type memoryRepo struct {
	entries []models.FinancialEntry
}

var _ domain.Repository = (*memoryRepo)(nil)

func (m *memoryRepo) Create(_ context.Context, e *models.FinancialEntry) error {
	e.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memoryRepo) Get(_ context.Context, salonID, id uint) (*models.FinancialEntry, error) {
	for _, e := range m.entries {
		if e.ID == id && e.SalonID == salonID {
			cp := e
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memoryRepo) Update(_ context.Context, e *models.FinancialEntry) error {
	for i := range m.entries {
		if m.entries[i].ID == e.ID {
			m.entries[i] = *e
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memoryRepo) List(_ context.Context, salonID uint, f domain.ListFilter) ([]models.FinancialEntry, error) {
	var out []models.FinancialEntry
	for _, e := range m.entries {
		if e.SalonID != salonID || (f.Kind != "" && e.Kind != f.Kind) || (f.Status != "" && e.Status != f.Status) {
			continue
		}
		if !f.From.IsZero() && e.DueDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !e.DueDate.Before(f.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func newService() (*Service, *memoryRepo) {
	repo := &memoryRepo{}
	return NewService(repo, nil, func() time.Time { return now }), repo
}

func TestCreateAndPayEntry(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	entry, err := svc.Create(ctx, CreateEntryInput{
		SalonID: 1, Timezone: "UTC",
		Kind: "payable", Description: " Aluguel ", AmountCents: 250000, DueDate: "2026-05-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "Aluguel", entry.Description)
	assert.Equal(t, "open", entry.Status)
	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), entry.DueDate)

	paid, err := svc.MarkPaid(ctx, 1, entry.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, "paid", repo.entries[0].Status)

	_, err = svc.MarkPaid(ctx, 1, entry.ID, 7)
	assert.Equal(t, "already_paid", httperr.BusinessCode(err))

	_, err = svc.MarkPaid(ctx, 2, entry.ID, 7)
	assert.Equal(t, "entry_not_found", httperr.BusinessCode(err))
}

func TestCreateEntryValidation(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), CreateEntryInput{SalonID: 1, Kind: "gift", Description: "x", AmountCents: 1, DueDate: "2026-05-10"})
	assert.Equal(t, "invalid_kind", httperr.BusinessCode(err))

	_, err = svc.Create(context.Background(), CreateEntryInput{SalonID: 1, Kind: "receivable", Description: "x", AmountCents: 1, DueDate: "10/05"})
	assert.Equal(t, "invalid_date", httperr.BusinessCode(err))
}

func TestSummaryAndExport(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for _, in := range []CreateEntryInput{
		{Kind: "receivable", Description: "Corte", AmountCents: 10000, DueDate: "2026-05-02"},
		{Kind: "receivable", Description: "Escova", AmountCents: 5000, DueDate: "2026-05-20"},
		{Kind: "payable", Description: "Produtos", AmountCents: 3000, DueDate: "2026-05-01"},
	} {
		in.SalonID = 1
		in.Timezone = "UTC"
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}
	_, err := svc.MarkPaid(ctx, 1, 1, 7)
	require.NoError(t, err)

	from, to, err := svc.Period("UTC", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), to)

	sum, err := svc.Summary(ctx, 1, domain.ListFilter{From: from, To: to})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), sum.ReceivablePaid)
	assert.Equal(t, int64(5000), sum.ReceivableOpen)
	assert.Equal(t, int64(0), sum.ReceivableOverdue)
	assert.Equal(t, int64(3000), sum.PayableOverdue)
	assert.Equal(t, int64(10000), sum.Balance)

	data, err := svc.Export(ctx, 1, domain.ListFilter{From: from, To: to})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Lancamentos")
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	_, _, err = svc.Period("UTC", "2026-05-10", "2026-05-01")
	assert.Equal(t, "invalid_range", httperr.BusinessCode(err))

	_, err = svc.List(ctx, 1, domain.ListFilter{Kind: "gift"})
	assert.Equal(t, "invalid_kind", httperr.BusinessCode(err))
}
