package engine

import "hawafiz/internal/domain"

// returnedQuantities aggregates credit-note returns for one invoice, keyed by
// product id. Every CreditNote allocation is resolved through the index; an
// allocation whose source id does not resolve contributes nothing.
func returnedQuantities(inv *domain.Invoice, notes map[string]domain.CreditNote) map[string]float64 {
	var returns map[string]float64
	for _, a := range inv.Allocations {
		if a.Type != domain.AllocationCreditNote {
			continue
		}
		note, ok := notes[a.SourceID]
		if !ok {
			continue
		}
		for _, item := range note.LineItems {
			if item.ProductID == "" {
				continue
			}
			if returns == nil {
				returns = make(map[string]float64)
			}
			returns[item.ProductID] += item.Quantity
		}
	}
	return returns
}
