package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hawafiz/internal/domain"
)

func TestTierPercent(t *testing.T) {
	assert.Equal(t, 2.0, tierPercent(70))
	assert.Equal(t, 2.0, tierPercent(150))
	assert.Equal(t, 1.0, tierPercent(69.99))
	assert.Equal(t, 1.0, tierPercent(0.01))
	assert.Equal(t, 0.0, tierPercent(0))
	assert.Equal(t, 0.0, tierPercent(-5))
}

func lineFixture() (domain.Invoice, domain.LineItem, Decision, *Indices) {
	inv := domain.Invoice{Reference: "INV-1", CreatedBy: "rep-7"}
	item := domain.LineItem{
		ProductID:    "p1",
		ProductName:  "fallback name",
		Quantity:     2,
		UnitPrice:    50,
		TaxPercent:   15,
		UnitTypeID:   "u1",
		UnitTypeName: "حبة",
	}
	dec := Decision{Attribution: date(2024, time.March, 5)}
	idx := BuildIndices(
		[]domain.Product{{ID: "p1", Name: "شاي"}},
		[]domain.UnitType{{ID: "u1", Factor: 1}},
		nil,
	)
	return inv, item, dec, idx
}

// Scenario A: 50 × 1.15 = 57.50 carton price, tier 1%, two units.
func TestComputeLine_ScenarioA(t *testing.T) {
	inv, item, dec, idx := lineFixture()

	line, ok := computeLine(&inv, &item, dec, nil, idx, DefaultCartonMarker)
	assert.True(t, ok)
	assert.Equal(t, "INV-1", line.InvoiceReference)
	assert.Equal(t, "rep-7", line.Rep)
	assert.Equal(t, "شاي", line.ProductName)
	assert.InDelta(t, 57.5, line.CartonPrice, 1e-9)
	assert.Equal(t, 1.0, line.BonusPercent)
	assert.Equal(t, 2.0, line.NetQuantity)
	assert.InDelta(t, 115, line.TotalSales, 1e-9)
	assert.InDelta(t, 1.15, line.BonusAmount, 1e-9)
	assert.False(t, line.Deferred)
	assert.Equal(t, dec.Attribution, line.AttributionDate)
}

func TestComputeLine_UnitFactorMultiplies(t *testing.T) {
	inv, item, dec, _ := lineFixture()
	idx := BuildIndices(nil, []domain.UnitType{{ID: "u1", Factor: 12}}, nil)

	// 50 × 1.15 × 12 = 690 → top tier.
	line, ok := computeLine(&inv, &item, dec, nil, idx, DefaultCartonMarker)
	assert.True(t, ok)
	assert.InDelta(t, 690, line.CartonPrice, 1e-9)
	assert.Equal(t, 2.0, line.BonusPercent)
}

func TestComputeLine_CartonMarkerSkipsFactor(t *testing.T) {
	inv, item, dec, _ := lineFixture()
	item.UnitTypeName = "كرتون كبير"
	idx := BuildIndices(nil, []domain.UnitType{{ID: "u1", Factor: 12}}, nil)

	line, ok := computeLine(&inv, &item, dec, nil, idx, DefaultCartonMarker)
	assert.True(t, ok)
	assert.InDelta(t, 57.5, line.CartonPrice, 1e-9, "carton lines take multiplier 1 even with a factor on file")
}

func TestComputeLine_UnknownUnitDefaultsToOne(t *testing.T) {
	inv, item, dec, _ := lineFixture()
	item.UnitTypeID = "unknown"
	idx := BuildIndices(nil, nil, nil)

	line, ok := computeLine(&inv, &item, dec, nil, idx, DefaultCartonMarker)
	assert.True(t, ok)
	assert.InDelta(t, 57.5, line.CartonPrice, 1e-9)
}

func TestComputeLine_NettingReducesQuantity(t *testing.T) {
	inv, item, dec, idx := lineFixture()
	returns := map[string]float64{"p1": 0.5}

	line, ok := computeLine(&inv, &item, dec, returns, idx, DefaultCartonMarker)
	assert.True(t, ok)
	assert.Equal(t, 1.5, line.NetQuantity)
	assert.InDelta(t, 57.5*1.5, line.TotalSales, 1e-9)
}

func TestComputeLine_NetQuantityNeverNegative(t *testing.T) {
	inv, item, dec, idx := lineFixture()
	returns := map[string]float64{"p1": 10}

	_, ok := computeLine(&inv, &item, dec, returns, idx, DefaultCartonMarker)
	assert.False(t, ok, "over-returned line is skipped, not negative")
}

func TestComputeLine_FullyReturnedSkips(t *testing.T) {
	inv, item, dec, idx := lineFixture()
	item.Quantity = 5
	returns := map[string]float64{"p1": 5}

	_, ok := computeLine(&inv, &item, dec, returns, idx, DefaultCartonMarker)
	assert.False(t, ok)
}

func TestComputeLine_ZeroPriceSkips(t *testing.T) {
	inv, item, dec, idx := lineFixture()
	item.UnitPrice = 0

	_, ok := computeLine(&inv, &item, dec, nil, idx, DefaultCartonMarker)
	assert.False(t, ok)

	item.UnitPrice = -10
	_, ok = computeLine(&inv, &item, dec, nil, idx, DefaultCartonMarker)
	assert.False(t, ok)
}

func TestComputeLine_ProductNameFallsBackToLine(t *testing.T) {
	inv, item, dec, _ := lineFixture()
	idx := BuildIndices(nil, nil, nil)

	line, ok := computeLine(&inv, &item, dec, nil, idx, DefaultCartonMarker)
	assert.True(t, ok)
	assert.Equal(t, "fallback name", line.ProductName)
}

func TestComputeLine_TopTierBoundary(t *testing.T) {
	inv, item, dec, idx := lineFixture()
	item.UnitPrice = 70
	item.TaxPercent = 0

	line, ok := computeLine(&inv, &item, dec, nil, idx, DefaultCartonMarker)
	assert.True(t, ok)
	assert.Equal(t, 2.0, line.BonusPercent)
	assert.InDelta(t, 140*0.02, line.BonusAmount, 1e-9)
}
