package domain

import "time"

// Invoice is a sales invoice snapshot from Qoyod. Engine input; never mutated.
type Invoice struct {
	Reference   string        `json:"reference"`
	ContactName string        `json:"contact_name"`
	Status      InvoiceStatus `json:"status"`
	IssueDate   Date          `json:"issue_date"`
	Total       float64       `json:"total"`
	Payments    []Payment     `json:"payments"`
	Allocations []Allocation  `json:"allocations"`
	LineItems   []LineItem    `json:"line_items"`
	CreatedBy   string        `json:"created_by"`
}

// Payment is a single payment recorded against an invoice.
type Payment struct {
	Amount float64 `json:"amount"`
	Date   Date    `json:"date"`
}

// Allocation links an invoice to a related source document. Only credit note
// allocations matter to the bonus engine; other types are carried but ignored.
type Allocation struct {
	Type     AllocationType `json:"type"`
	SourceID string         `json:"source_id"`
}

// CreditNote records returned goods allocated back to invoices.
type CreditNote struct {
	ID        string               `json:"id"`
	LineItems []CreditNoteLineItem `json:"line_items"`
}

// CreditNoteLineItem is one returned product on a credit note.
type CreditNoteLineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// LineItem is one sold product on an invoice.
type LineItem struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TaxPercent   float64 `json:"tax_percent"`
	UnitTypeID   string  `json:"unit_type_id"`
	UnitTypeName string  `json:"unit_type_name"`
}

// Product is a catalog entry. Name is already resolved (Arabic preferred,
// English fallback) at the ingestion boundary.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// UnitType is a selling unit with its carton conversion factor. Factor is the
// multiplier relative to one carton and defaults to 1 when Qoyod omits it.
type UnitType struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// DateWindow is an inclusive issue-date range used when fetching invoices.
type DateWindow struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// Snapshot holds the four input collections for one engine run.
type Snapshot struct {
	Invoices    []Invoice    `json:"invoices"`
	Products    []Product    `json:"products"`
	UnitTypes   []UnitType   `json:"unit_types"`
	CreditNotes []CreditNote `json:"credit_notes"`
	Window      DateWindow   `json:"window"`
	FetchedAt   time.Time    `json:"fetched_at"`
}

// BonusLine is one computed bonus row for an included invoice line.
type BonusLine struct {
	InvoiceReference string  `json:"invoice_reference"`
	Rep              string  `json:"rep"`
	ProductName      string  `json:"product_name"`
	NetQuantity      float64 `json:"net_quantity"`
	CartonPrice      float64 `json:"carton_price"`
	BonusPercent     float64 `json:"bonus_percent"`
	BonusAmount      float64 `json:"bonus_amount"`
	TotalSales       float64 `json:"total_sales"`
	Deferred         bool    `json:"deferred"`
	AttributionDate  Date    `json:"attribution_date"`
}

// ExcludedInvoice records an invoice that contributed no bonus lines, tagged
// with the reason. AttributionDate is zero unless the classifier computed one
// before excluding (OUTSIDE_MONTH diagnostics).
type ExcludedInvoice struct {
	Reference       string          `json:"reference"`
	ContactName     string          `json:"contact_name"`
	Status          InvoiceStatus   `json:"status"`
	IssueDate       Date            `json:"issue_date"`
	Total           float64         `json:"total"`
	Reason          ExclusionReason `json:"reason"`
	AttributionDate Date            `json:"attribution_date"`
}

// ReportSummary carries the headline counts returned alongside a report.
type ReportSummary struct {
	InvoiceCount    int     `json:"invoice_count"`
	IncludedCount   int     `json:"included_count"`
	ExcludedCount   int     `json:"excluded_count"`
	LineCount       int     `json:"line_count"`
	TotalSales      float64 `json:"total_sales"`
	TotalBonus      float64 `json:"total_bonus"`
	DeferredLines   int     `json:"deferred_lines"`
	ProductCount    int     `json:"product_count"`
	CreditNoteCount int     `json:"credit_note_count"`
}

// BonusReport is the full result of one monthly computation.
type BonusReport struct {
	Period    Period            `json:"period"`
	Window    DateWindow        `json:"window"`
	Lines     []BonusLine       `json:"lines"`
	Excluded  []ExcludedInvoice `json:"excluded"`
	Summary   ReportSummary     `json:"summary"`
	FetchedAt time.Time         `json:"fetched_at"`
}
