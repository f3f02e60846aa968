package qoyod

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"hawafiz/internal/domain"
)

// Qoyod record fields are duck-typed: ids and amounts arrive as numbers or
// strings depending on the endpoint, names split into name_ar/name_en, and
// any field may be absent. This file is the single boundary where those raw
// shapes become typed domain records with their documented defaults; nothing
// past it touches raw JSON.

// flexString decodes a JSON string, number, or null into a string.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			*s = ""
			return nil
		}
		*s = flexString(v)
		return nil
	}
	if b[0] == '{' || b[0] == '[' {
		*s = ""
		return nil
	}
	*s = flexString(b)
	return nil
}

func (s flexString) String() string { return string(s) }

// flexFloat decodes a JSON number, numeric string, or null into a float64,
// defaulting to 0 when unparseable.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			*f = 0
			return nil
		}
		s = v
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type rawPayment struct {
	Amount      flexFloat  `json:"amount"`
	Date        flexString `json:"date"`
	PaymentDate flexString `json:"payment_date"`
}

type rawAllocation struct {
	SourceType flexString `json:"source_type"`
	SourceID   flexString `json:"source_id"`
}

type rawLineItem struct {
	ProductID    flexString `json:"product_id"`
	ProductName  flexString `json:"product_name"`
	Name         flexString `json:"name"`
	Quantity     flexFloat  `json:"quantity"`
	UnitPrice    flexFloat  `json:"unit_price"`
	TaxPercent   flexFloat  `json:"tax_percent"`
	UnitTypeID   flexString `json:"unit_type_id"`
	UnitType     flexString `json:"unit_type"`
	UnitTypeName flexString `json:"unit_type_name"`
	Unit         flexString `json:"unit"`
}

type rawInvoice struct {
	Reference   flexString      `json:"reference"`
	ContactName flexString      `json:"contact_name"`
	Status      flexString      `json:"status"`
	IssueDate   flexString      `json:"issue_date"`
	Total       flexFloat       `json:"total"`
	Payments    []rawPayment    `json:"payments"`
	Allocations []rawAllocation `json:"allocations"`
	LineItems   []rawLineItem   `json:"line_items"`
	CreatedBy   flexString      `json:"created_by"`
}

type rawProduct struct {
	ID     flexString `json:"id"`
	NameAr flexString `json:"name_ar"`
	NameEn flexString `json:"name_en"`
	SKU    flexString `json:"sku"`
}

type rawUnitType struct {
	ID     flexString `json:"id"`
	NameAr flexString `json:"name_ar"`
	NameEn flexString `json:"name_en"`
	Factor flexFloat  `json:"conversion_factor"`
}

type rawCreditNoteItem struct {
	ProductID flexString `json:"product_id"`
	Quantity  flexFloat  `json:"quantity"`
}

type rawCreditNote struct {
	ID        flexString          `json:"id"`
	LineItems []rawCreditNoteItem `json:"line_items"`
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...flexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

func normalizeInvoice(r *rawInvoice) domain.Invoice {
	inv := domain.Invoice{
		Reference:   r.Reference.String(),
		ContactName: r.ContactName.String(),
		Status:      domain.InvoiceStatus(r.Status),
		IssueDate:   domain.ParseDate(r.IssueDate.String()),
		Total:       float64(r.Total),
		CreatedBy:   r.CreatedBy.String(),
	}
	for _, p := range r.Payments {
		inv.Payments = append(inv.Payments, domain.Payment{
			Amount: float64(p.Amount),
			Date:   domain.ParseDate(firstNonEmpty(p.Date, p.PaymentDate)),
		})
	}
	for _, a := range r.Allocations {
		inv.Allocations = append(inv.Allocations, domain.Allocation{
			Type:     domain.AllocationType(a.SourceType),
			SourceID: a.SourceID.String(),
		})
	}
	for _, li := range r.LineItems {
		inv.LineItems = append(inv.LineItems, domain.LineItem{
			ProductID:    li.ProductID.String(),
			ProductName:  firstNonEmpty(li.ProductName, li.Name),
			Quantity:     float64(li.Quantity),
			UnitPrice:    float64(li.UnitPrice),
			TaxPercent:   float64(li.TaxPercent),
			UnitTypeID:   firstNonEmpty(li.UnitTypeID, li.UnitType),
			UnitTypeName: firstNonEmpty(li.UnitTypeName, li.Unit),
		})
	}
	return inv
}

func normalizeProduct(r *rawProduct) domain.Product {
	return domain.Product{
		ID:   r.ID.String(),
		Name: firstNonEmpty(r.NameAr, r.NameEn),
		SKU:  r.SKU.String(),
	}
}

func normalizeUnitType(r *rawUnitType) domain.UnitType {
	f := float64(r.Factor)
	if f == 0 {
		f = 1
	}
	return domain.UnitType{
		ID:     r.ID.String(),
		Name:   firstNonEmpty(r.NameAr, r.NameEn),
		Factor: f,
	}
}

func normalizeCreditNote(r *rawCreditNote) domain.CreditNote {
	n := domain.CreditNote{ID: r.ID.String()}
	for _, li := range r.LineItems {
		n.LineItems = append(n.LineItems, domain.CreditNoteLineItem{
			ProductID: li.ProductID.String(),
			Quantity:  float64(li.Quantity),
		})
	}
	return n
}
