package engine

import "hawafiz/internal/domain"

// Indices are the id-keyed lookup maps built once per computation run.
type Indices struct {
	Products    map[string]domain.Product
	Factors     map[string]float64
	CreditNotes map[string]domain.CreditNote
}

// BuildIndices turns the flat reference lists into lookup maps. Entries
// without a usable id are skipped; everything else is indexed with
// best-effort defaults (empty name, factor 1) rather than dropped.
func BuildIndices(products []domain.Product, units []domain.UnitType, notes []domain.CreditNote) *Indices {
	idx := &Indices{
		Products:    make(map[string]domain.Product, len(products)),
		Factors:     make(map[string]float64, len(units)),
		CreditNotes: make(map[string]domain.CreditNote, len(notes)),
	}

	for _, p := range products {
		if p.ID == "" {
			continue
		}
		idx.Products[p.ID] = p
	}

	for _, u := range units {
		if u.ID == "" {
			continue
		}
		f := u.Factor
		if f == 0 {
			f = 1
		}
		idx.Factors[u.ID] = f
	}

	for _, n := range notes {
		if n.ID == "" {
			continue
		}
		idx.CreditNotes[n.ID] = n
	}

	return idx
}

// Factor returns the carton conversion factor for a unit type id, defaulting
// to 1 when the id is unknown.
func (x *Indices) Factor(unitTypeID string) float64 {
	if f, ok := x.Factors[unitTypeID]; ok {
		return f
	}
	return 1
}

// ProductName resolves a product's display name through the index, falling
// back to the name carried on the invoice line itself.
func (x *Indices) ProductName(productID, fallback string) string {
	if p, ok := x.Products[productID]; ok && p.Name != "" {
		return p.Name
	}
	return fallback
}
