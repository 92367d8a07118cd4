package reports

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"github.com/xuri/excelize/v2"
)

const ledgerSheet = "Ledger"

// BuildLedgerWorkbook renders the finance ledger for a date range into an
// xlsx workbook the controller can stream out.
func BuildLedgerWorkbook(ctx context.Context, from time.Time, to time.Time) (*excelize.File, error) {
	records, err := models.ListFinanceRecords(ctx, &from, &to, nil, nil)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(ledgerSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Date", "Type", "Category", "Amount", "Notes", "RelatedType", "RelatedId"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ledgerSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowNo, record := range records {
		related := ""
		if record.RelatedID != nil {
			related = fmt.Sprint(*record.RelatedID)
		}
		values := []interface{}{
			record.RecordDate.Format("2006-01-02"),
			string(record.Type),
			string(record.Category),
			record.Amount.String(),
			record.Notes,
			record.RelatedType,
			related,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNo+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(ledgerSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
