package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const sheet = "Lancamentos"

var headers = []any{"ID", "Tipo", "Descrição", "Valor (R$)", "Vencimento", "Status", "Pago em"}

// FinancialEntries gera a planilha de contas a receber / a pagar.
func FinancialEntries(entries []models.FinancialEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, e := range entries {
		paidAt := ""
		if e.PaidAt != nil {
			paidAt = e.PaidAt.Format("02/01/2006")
		}

		row := []any{
			e.ID,
			kindLabel(e.Kind),
			e.Description,
			float64(e.AmountCents) / 100,
			e.DueDate.Format("02/01/2006"),
			e.Status,
			paidAt,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func kindLabel(kind string) string {
	switch kind {
	case "receivable":
		return "A receber"
	case "payable":
		return "A pagar"
	}
	return kind
}
