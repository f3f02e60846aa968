package engine

import (
	"math"

	"hawafiz/internal/domain"
)

// paymentEpsilon is the currency-rounding tolerance used when comparing the
// paid sum against the invoice total. Fixed; not a business threshold.
const paymentEpsilon = 0.01

// Decision is the inclusion decision for one invoice.
type Decision struct {
	// Deferred is true when the invoice was settled on a different day than
	// it was issued.
	Deferred bool
	// Attribution is the date that decides which month the invoice counts
	// toward: the issue date for cash invoices, the latest payment date for
	// deferred ones.
	Attribution domain.Date
}

// Classify applies the ordered inclusion rules to one invoice. It returns the
// empty reason when the invoice counts for the period; otherwise the first
// matching exclusion reason. An invoice never carries two reasons.
//
// The deferred/attribution step runs before the month check on purpose: an
// invoice issued in an earlier month still counts in the month its last
// payment landed, which is the point of the whole report.
func Classify(inv *domain.Invoice, period domain.Period) (Decision, domain.ExclusionReason) {
	if inv.Status != domain.StatusPaid {
		return Decision{}, domain.ReasonNotPaid
	}

	var totalPaid float64
	for _, p := range inv.Payments {
		totalPaid += p.Amount
	}
	if math.Abs(totalPaid-inv.Total) > paymentEpsilon {
		return Decision{}, domain.ReasonPartialPayment
	}

	// A deferred invoice follows its money, not its paperwork: attribution is
	// the latest payment date even when every payment landed before the issue
	// date (advance payment).
	d := Decision{Attribution: inv.IssueDate}
	var lastPayment domain.Date
	for _, p := range inv.Payments {
		if !p.Date.Equal(inv.IssueDate) {
			d.Deferred = true
		}
		if p.Date.After(lastPayment) {
			lastPayment = p.Date
		}
	}
	if d.Deferred {
		d.Attribution = lastPayment
	}

	if !period.Contains(d.Attribution) {
		// Keep the computed attribution so the exclusion is explainable.
		return d, domain.ReasonOutsideMonth
	}

	return d, ""
}
