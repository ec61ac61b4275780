package entity

import (
	"time"

	"gorm.io/datatypes"
)

// QuotationPatch carries the fields of an update. Nil fields keep their
// stored value; identity, ownership, number and status are never patched.
// The Clear flags remove an optional block and win over a value.
type QuotationPatch struct {
	QuotationDate      *time.Time
	CompanyDetails     *CompanyDetails
	CustomerDetails    *CustomerDetails
	Items              []LineItem
	SubTotal           *float64
	Tax                *Tax
	Discount           *Discount
	GrandTotal         *float64
	TermsAndConditions *string
	Notes              *string

	ClearTax                bool
	ClearDiscount           bool
	ClearTermsAndConditions bool
	ClearNotes              bool
}

// Apply merges the patch into q
func (p *QuotationPatch) Apply(q *Quotation) {
	if p == nil {
		return
	}
	if p.QuotationDate != nil {
		q.QuotationDate = *p.QuotationDate
	}
	if p.CompanyDetails != nil {
		q.CompanyDetails = *p.CompanyDetails
	}
	if p.CustomerDetails != nil {
		q.CustomerDetails = *p.CustomerDetails
	}
	if p.Items != nil {
		q.Items = datatypes.JSONSlice[LineItem](p.Items)
	}
	if p.SubTotal != nil {
		q.SubTotal = *p.SubTotal
	}
	if p.Tax != nil {
		q.Tax = p.Tax
	}
	if p.Discount != nil {
		q.Discount = p.Discount
	}
	if p.GrandTotal != nil {
		q.GrandTotal = *p.GrandTotal
	}
	if p.TermsAndConditions != nil {
		q.TermsAndConditions = p.TermsAndConditions
	}
	if p.Notes != nil {
		q.Notes = p.Notes
	}

	if p.ClearTax {
		q.Tax = nil
	}
	if p.ClearDiscount {
		q.Discount = nil
	}
	if p.ClearTermsAndConditions {
		q.TermsAndConditions = nil
	}
	if p.ClearNotes {
		q.Notes = nil
	}
}
