package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestFinancialEntries(t *testing.T) {
	paid := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	entries := []models.FinancialEntry{
		{ID: 1, Kind: "receivable", Description: "Corte", AmountCents: 8050, DueDate: paid, Status: "paid", PaidAt: &paid},
		{ID: 2, Kind: "payable", Description: "Aluguel", AmountCents: 150000, DueDate: paid, Status: "open"},
	}

	data, err := FinancialEntries(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Descrição", rows[0][2])
	assert.Equal(t, "A receber", rows[1][1])
	assert.Equal(t, "80.5", rows[1][3])
	assert.Equal(t, "02/06/2026", rows[1][6])
	assert.Equal(t, "A pagar", rows[2][1])
}
