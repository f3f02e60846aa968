// Package export renders bonus reports as downloadable files. The engine
// owns no file format; everything here is presentation.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hawafiz/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows; without them Excel
// mangles the Arabic product names.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// lineColumns defines the bonus-line header row.
var lineColumns = []string{
	"Invoice",
	"Rep",
	"Product",
	"Net Qty",
	"Carton Price",
	"Bonus %",
	"Bonus Amount",
	"Total Sales",
	"Type",
	"Attribution Date",
}

// excludedColumns defines the excluded-invoice header row.
var excludedColumns = []string{
	"Invoice",
	"Customer",
	"Status",
	"Issue Date",
	"Total",
	"Reason",
	"Attribution Date",
}

// CSVExporter writes a bonus report as a two-section CSV file.
type CSVExporter struct{}

// NewCSVExporter creates a CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

func (e *CSVExporter) FileExt() string { return "csv" }

// Write renders the bonus lines followed by the excluded invoices, separated
// by a blank row and a section title.
func (e *CSVExporter) Write(w io.Writer, report *domain.BonusReport) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(lineColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range report.Lines {
		if err := cw.Write(lineToRow(&report.Lines[i])); err != nil {
			return fmt.Errorf("writing line row: %w", err)
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	if err := cw.Write([]string{"Excluded Invoices"}); err != nil {
		return fmt.Errorf("writing section title: %w", err)
	}
	if err := cw.Write(excludedColumns); err != nil {
		return fmt.Errorf("writing excluded header: %w", err)
	}
	for i := range report.Excluded {
		if err := cw.Write(excludedToRow(&report.Excluded[i])); err != nil {
			return fmt.Errorf("writing excluded row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func lineToRow(l *domain.BonusLine) []string {
	return []string{
		l.InvoiceReference,
		l.Rep,
		l.ProductName,
		formatQty(l.NetQuantity),
		formatMoney(l.CartonPrice),
		formatQty(l.BonusPercent),
		formatMoney(l.BonusAmount),
		formatMoney(l.TotalSales),
		settlementLabel(l.Deferred),
		l.AttributionDate.String(),
	}
}

func excludedToRow(x *domain.ExcludedInvoice) []string {
	return []string{
		x.Reference,
		x.ContactName,
		string(x.Status),
		x.IssueDate.String(),
		formatMoney(x.Total),
		string(x.Reason),
		x.AttributionDate.String(),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func settlementLabel(deferred bool) string {
	if deferred {
		return "deferred"
	}
	return "cash"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the attachment filename for a report download.
// Format: bonus_{YYYY-MM}_{YYYY-MM-DD}.{ext}
func BuildFilename(period domain.Period, ext string) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename("bonus_"+period.String()), date, ext)
}
