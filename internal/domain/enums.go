package domain

// InvoiceStatus is the Qoyod invoice lifecycle status. Only StatusPaid is
// meaningful to the bonus engine; the rest are carried for reporting.
type InvoiceStatus string

const (
	StatusPaid     InvoiceStatus = "Paid"
	StatusDraft    InvoiceStatus = "Draft"
	StatusApproved InvoiceStatus = "Approved"
	StatusOverdue  InvoiceStatus = "Overdue"
	StatusVoided   InvoiceStatus = "Voided"
)

// AllocationType identifies the document an invoice allocation points to.
type AllocationType string

const (
	AllocationCreditNote AllocationType = "CreditNote"
)

// ExclusionReason explains why an invoice contributed no bonus lines.
type ExclusionReason string

const (
	// ReasonNotPaid: invoice status is anything other than Paid.
	ReasonNotPaid ExclusionReason = "NOT_PAID"
	// ReasonPartialPayment: recorded payments do not cover the invoice total.
	ReasonPartialPayment ExclusionReason = "PARTIAL_PAYMENT"
	// ReasonOutsideMonth: the attribution date falls outside the target month.
	ReasonOutsideMonth ExclusionReason = "OUTSIDE_MONTH"
	// ReasonNoValidItems: every line was skipped after netting and tiering.
	ReasonNoValidItems ExclusionReason = "NO_VALID_ITEMS"
)
