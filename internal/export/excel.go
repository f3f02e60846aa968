package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hawafiz/internal/domain"
)

const (
	sheetLines    = "Bonus Lines"
	sheetExcluded = "Excluded"
)

// ExcelExporter writes a bonus report as an XLSX workbook with one sheet per
// output collection.
type ExcelExporter struct{}

// NewExcelExporter creates an ExcelExporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) FileExt() string { return "xlsx" }

// Write renders the workbook to w.
func (e *ExcelExporter) Write(w io.Writer, report *domain.BonusReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetLines); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetExcluded); err != nil {
		return fmt.Errorf("adding excluded sheet: %w", err)
	}

	if err := writeRow(f, sheetLines, 1, toAny(lineColumns)); err != nil {
		return err
	}
	for i := range report.Lines {
		l := &report.Lines[i]
		row := []interface{}{
			l.InvoiceReference,
			l.Rep,
			l.ProductName,
			l.NetQuantity,
			l.CartonPrice,
			l.BonusPercent,
			l.BonusAmount,
			l.TotalSales,
			settlementLabel(l.Deferred),
			l.AttributionDate.String(),
		}
		if err := writeRow(f, sheetLines, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, sheetExcluded, 1, toAny(excludedColumns)); err != nil {
		return err
	}
	for i := range report.Excluded {
		x := &report.Excluded[i]
		row := []interface{}{
			x.Reference,
			x.ContactName,
			string(x.Status),
			x.IssueDate.String(),
			x.Total,
			string(x.Reason),
			x.AttributionDate.String(),
		}
		if err := writeRow(f, sheetExcluded, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}
