package qoyod

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hawafiz/internal/domain"
)

func TestNormalizeInvoice_DuckTypedFields(t *testing.T) {
	raw := []byte(`{
		"reference": 10045,
		"contact_name": "مؤسسة النور",
		"status": "Paid",
		"issue_date": "2024-03-05T10:00:00+03:00",
		"total": "310.50",
		"payments": [
			{"amount": "310.50", "payment_date": "2024-03-20"}
		],
		"allocations": [
			{"source_type": "CreditNote", "source_id": 77}
		],
		"line_items": [
			{
				"product_id": 12,
				"name": "شاي أخضر",
				"quantity": "6",
				"unit_price": "45.0",
				"tax_percent": 15,
				"unit_type": 3,
				"unit": "حبة"
			}
		],
		"created_by": 9
	}`)

	var r rawInvoice
	require.NoError(t, json.Unmarshal(raw, &r))
	inv := normalizeInvoice(&r)

	assert.Equal(t, "10045", inv.Reference)
	assert.Equal(t, "مؤسسة النور", inv.ContactName)
	assert.Equal(t, domain.StatusPaid, inv.Status)
	assert.Equal(t, domain.Date{Year: 2024, Month: time.March, Day: 5}, inv.IssueDate)
	assert.Equal(t, 310.5, inv.Total)
	assert.Equal(t, "9", inv.CreatedBy)

	require.Len(t, inv.Payments, 1)
	assert.Equal(t, 310.5, inv.Payments[0].Amount)
	assert.Equal(t, domain.Date{Year: 2024, Month: time.March, Day: 20}, inv.Payments[0].Date)

	require.Len(t, inv.Allocations, 1)
	assert.Equal(t, domain.AllocationCreditNote, inv.Allocations[0].Type)
	assert.Equal(t, "77", inv.Allocations[0].SourceID)

	require.Len(t, inv.LineItems, 1)
	li := inv.LineItems[0]
	assert.Equal(t, "12", li.ProductID)
	assert.Equal(t, "شاي أخضر", li.ProductName)
	assert.Equal(t, 6.0, li.Quantity)
	assert.Equal(t, 45.0, li.UnitPrice)
	assert.Equal(t, 15.0, li.TaxPercent)
	assert.Equal(t, "3", li.UnitTypeID)
	assert.Equal(t, "حبة", li.UnitTypeName)
}

func TestNormalizeInvoice_MissingFieldsDefault(t *testing.T) {
	var r rawInvoice
	require.NoError(t, json.Unmarshal([]byte(`{}`), &r))
	inv := normalizeInvoice(&r)

	assert.Empty(t, inv.Reference)
	assert.True(t, inv.IssueDate.IsZero())
	assert.Zero(t, inv.Total)
	assert.Empty(t, inv.Payments)
	assert.Empty(t, inv.LineItems)
}

func TestNormalizeInvoice_PaymentDateFieldVariants(t *testing.T) {
	var r rawInvoice
	require.NoError(t, json.Unmarshal([]byte(`{
		"payments": [
			{"amount": 10, "date": "2024-03-01"},
			{"amount": 20, "payment_date": "2024-03-02"}
		]
	}`), &r))
	inv := normalizeInvoice(&r)

	require.Len(t, inv.Payments, 2)
	assert.Equal(t, 1, inv.Payments[0].Date.Day)
	assert.Equal(t, 2, inv.Payments[1].Date.Day)
}

func TestNormalizeProduct_ArabicNamePreferred(t *testing.T) {
	var r rawProduct
	require.NoError(t, json.Unmarshal([]byte(`{"id": 5, "name_ar": "قهوة", "name_en": "Coffee", "sku": "COF"}`), &r))
	p := normalizeProduct(&r)

	assert.Equal(t, "5", p.ID)
	assert.Equal(t, "قهوة", p.Name)
	assert.Equal(t, "COF", p.SKU)
}

func TestNormalizeProduct_EnglishFallback(t *testing.T) {
	var r rawProduct
	require.NoError(t, json.Unmarshal([]byte(`{"id": "5", "name_en": "Coffee"}`), &r))
	p := normalizeProduct(&r)

	assert.Equal(t, "Coffee", p.Name)
	assert.Empty(t, p.SKU)
}

func TestNormalizeUnitType_FactorDefaults(t *testing.T) {
	var r rawUnitType
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "name_ar": "حبة"}`), &r))
	u := normalizeUnitType(&r)
	assert.Equal(t, 1.0, u.Factor, "absent factor defaults to 1")

	r = rawUnitType{}
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "conversion_factor": "not a number"}`), &r))
	u = normalizeUnitType(&r)
	assert.Equal(t, 1.0, u.Factor, "unparseable factor defaults to 1")

	r = rawUnitType{}
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "conversion_factor": "24"}`), &r))
	u = normalizeUnitType(&r)
	assert.Equal(t, 24.0, u.Factor)
}

func TestNormalizeCreditNote(t *testing.T) {
	var r rawCreditNote
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 77,
		"line_items": [{"product_id": 12, "quantity": "2.5"}]
	}`), &r))
	n := normalizeCreditNote(&r)

	assert.Equal(t, "77", n.ID)
	require.Len(t, n.LineItems, 1)
	assert.Equal(t, "12", n.LineItems[0].ProductID)
	assert.Equal(t, 2.5, n.LineItems[0].Quantity)
}

func TestFlexString_IgnoresStructuredValues(t *testing.T) {
	var s flexString
	require.NoError(t, json.Unmarshal([]byte(`{"nested": true}`), &s))
	assert.Empty(t, s.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.Empty(t, s.String())
}
