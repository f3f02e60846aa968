package engine

import (
	"strings"

	"hawafiz/internal/domain"
)

// Tier policy over the carton-equivalent price.
const (
	tierThreshold   = 70.0
	tierHighPercent = 2.0
	tierLowPercent  = 1.0
)

// tierPercent returns the bonus percentage for a carton-equivalent price.
func tierPercent(cartonPrice float64) float64 {
	switch {
	case cartonPrice >= tierThreshold:
		return tierHighPercent
	case cartonPrice > 0:
		return tierLowPercent
	default:
		return 0
	}
}

// computeLine computes the bonus row for a single invoice line. The second
// return value is false when the line contributes nothing (zero tier or fully
// returned quantity); that is a line-level skip, not an invoice exclusion.
func computeLine(
	inv *domain.Invoice,
	item *domain.LineItem,
	dec Decision,
	returns map[string]float64,
	idx *Indices,
	cartonMarker string,
) (domain.BonusLine, bool) {
	priceInclTax := item.UnitPrice * (1 + item.TaxPercent/100)

	// A line already sold by the carton needs no conversion, whatever the
	// factor table says about its unit type.
	multiplier := 1.0
	if cartonMarker == "" || !strings.Contains(item.UnitTypeName, cartonMarker) {
		multiplier = idx.Factor(item.UnitTypeID)
	}
	cartonPrice := priceInclTax * multiplier

	netQty := item.Quantity - returns[item.ProductID]
	if netQty < 0 {
		netQty = 0
	}

	pct := tierPercent(cartonPrice)
	if pct == 0 || netQty == 0 {
		return domain.BonusLine{}, false
	}

	totalSales := priceInclTax * netQty
	return domain.BonusLine{
		InvoiceReference: inv.Reference,
		Rep:              inv.CreatedBy,
		ProductName:      idx.ProductName(item.ProductID, item.ProductName),
		NetQuantity:      netQty,
		CartonPrice:      cartonPrice,
		BonusPercent:     pct,
		BonusAmount:      totalSales * pct / 100,
		TotalSales:       totalSales,
		Deferred:         dec.Deferred,
		AttributionDate:  dec.Attribution,
	}, true
}
