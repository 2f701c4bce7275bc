package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestValidate(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	ok := &models.FinancialEntry{Kind: "payable", AmountCents: 100, Description: "aluguel", DueDate: due}
	require.NoError(t, Validate(ok))
	assert.Equal(t, "open", ok.Status)

	cases := map[string]*models.FinancialEntry{
		"invalid_kind":        {Kind: "gift", AmountCents: 100, Description: "x", DueDate: due},
		"invalid_amount":      {Kind: "payable", AmountCents: 0, Description: "x", DueDate: due},
		"missing_description": {Kind: "payable", AmountCents: 100, Description: "  ", DueDate: due},
		"missing_due_date":    {Kind: "receivable", AmountCents: 100, Description: "x"},
	}
	for code, e := range cases {
		assert.True(t, httperr.IsBusiness(Validate(e), code), code)
	}
}

func TestMarkPaid(t *testing.T) {
	now := time.Now()
	e := &models.FinancialEntry{Status: "open"}

	require.NoError(t, MarkPaid(e, now))
	assert.Equal(t, "paid", e.Status)
	assert.True(t, httperr.IsBusiness(MarkPaid(e, now), "already_paid"))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	past := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	entries := []models.FinancialEntry{
		{Kind: "receivable", AmountCents: 5000, Status: "paid", DueDate: past},
		{Kind: "receivable", AmountCents: 3000, Status: "open", DueDate: past},
		{Kind: "receivable", AmountCents: 2000, Status: "open", DueDate: today},
		{Kind: "payable", AmountCents: 1500, Status: "paid", DueDate: past},
		{Kind: "payable", AmountCents: 700, Status: "open", DueDate: past},
	}

	assert.Equal(t, Summary{
		ReceivableOpen:    5000,
		ReceivablePaid:    5000,
		ReceivableOverdue: 3000,
		PayableOpen:       700,
		PayablePaid:       1500,
		PayableOverdue:    700,
		Balance:           3500,
	}, Summarize(entries, now))
}
