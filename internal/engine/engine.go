// Package engine computes monthly sales-rep bonuses from a Qoyod snapshot.
//
// The computation is a pure function of the four input collections and the
// target period: it owns its lookup indices and output slices per invocation,
// keeps no package-level state, and is safe to run concurrently for
// independent snapshots.
package engine

import "hawafiz/internal/domain"

// DefaultCartonMarker is the substring of a unit-type display name that marks
// a line as already priced per carton.
const DefaultCartonMarker = "كرتون"

// Options tune the computation.
type Options struct {
	// CartonMarker overrides DefaultCartonMarker when non-empty.
	CartonMarker string
}

// Result holds the two output collections of one run. Order is deterministic:
// invoice input order, then line order within each invoice.
type Result struct {
	Lines    []domain.BonusLine
	Excluded []domain.ExcludedInvoice
}

// Compute runs the full bonus computation for one target month. Every invoice
// ends up in exactly one of the two collections: it either contributes bonus
// lines or appears once in Excluded with a reason.
func Compute(snap *domain.Snapshot, period domain.Period, opts Options) Result {
	marker := opts.CartonMarker
	if marker == "" {
		marker = DefaultCartonMarker
	}

	idx := BuildIndices(snap.Products, snap.UnitTypes, snap.CreditNotes)

	res := Result{
		Lines:    []domain.BonusLine{},
		Excluded: []domain.ExcludedInvoice{},
	}

	for i := range snap.Invoices {
		inv := &snap.Invoices[i]

		dec, reason := Classify(inv, period)
		if reason != "" {
			res.Excluded = append(res.Excluded, excludedInvoice(inv, reason, dec.Attribution))
			continue
		}

		returns := returnedQuantities(inv, idx.CreditNotes)

		emitted := false
		for j := range inv.LineItems {
			line, ok := computeLine(inv, &inv.LineItems[j], dec, returns, idx, marker)
			if !ok {
				continue
			}
			res.Lines = append(res.Lines, line)
			emitted = true
		}

		if !emitted {
			res.Excluded = append(res.Excluded, excludedInvoice(inv, domain.ReasonNoValidItems, dec.Attribution))
		}
	}

	return res
}

// excludedInvoice builds the exclusion record from an invoice's summary
// fields. attribution is zero when the classifier bailed before computing it.
func excludedInvoice(inv *domain.Invoice, reason domain.ExclusionReason, attribution domain.Date) domain.ExcludedInvoice {
	return domain.ExcludedInvoice{
		Reference:       inv.Reference,
		ContactName:     inv.ContactName,
		Status:          inv.Status,
		IssueDate:       inv.IssueDate,
		Total:           inv.Total,
		Reason:          reason,
		AttributionDate: attribution,
	}
}
