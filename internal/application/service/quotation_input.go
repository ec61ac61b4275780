package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotify-api/internal/domain/entity"
	"gorm.io/datatypes"
)

// Date accepts either a calendar date ("2006-01-02") or an RFC 3339 timestamp
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// CompanyInput identifies the issuing company
type CompanyInput struct {
	Name      string  `json:"name" validate:"required"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" validate:"omitempty,email"`
	GSTNumber *string `json:"gstNumber"`
}

// CustomerInput identifies the quoted customer
type CustomerInput struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// LineItemInput is one priced row. Numerics are pointers so that a
// missing value can be told apart from an explicit zero.
type LineItemInput struct {
	Description string   `json:"description" validate:"required"`
	Quantity    *float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string   `json:"unit"`
	Rate        *float64 `json:"rate" validate:"required,gte=0"`
	Amount      *float64 `json:"amount" validate:"required,gte=0"`
}

// TaxInput is the optional tax block
type TaxInput struct {
	Label      string   `json:"label"`
	Percentage *float64 `json:"percentage" validate:"omitempty,gte=0"`
	Amount     *float64 `json:"amount" validate:"omitempty,gte=0"`
}

// DiscountInput is the optional discount block
type DiscountInput struct {
	Label  string   `json:"label"`
	Amount *float64 `json:"amount" validate:"omitempty,gte=0"`
}

// CreateQuotationInput represents the input for creating a quotation.
// Any status sent by the caller is ignored; new quotations are drafts.
type CreateQuotationInput struct {
	UserID             uuid.UUID       `json:"-"`
	QuotationDate      *Date           `json:"quotationDate"`
	CompanyDetails     CompanyInput    `json:"companyDetails"`
	CustomerDetails    CustomerInput   `json:"customerDetails"`
	Items              []LineItemInput `json:"items" validate:"required,min=1,dive"`
	SubTotal           *float64        `json:"subTotal" validate:"required,gte=0"`
	Tax                *TaxInput       `json:"tax"`
	Discount           *DiscountInput  `json:"discount"`
	GrandTotal         *float64        `json:"grandTotal" validate:"required,gte=0"`
	TermsAndConditions *string         `json:"termsAndConditions"`
	Notes              *string         `json:"notes"`
}

// UpdateQuotationInput carries a partial update; omitted fields keep their
// value. An explicit JSON null on tax, discount, termsAndConditions or notes
// removes that block.
type UpdateQuotationInput struct {
	QuotationDate      *Date           `json:"quotationDate"`
	CompanyDetails     *CompanyInput   `json:"companyDetails"`
	CustomerDetails    *CustomerInput  `json:"customerDetails"`
	Items              []LineItemInput `json:"items" validate:"omitnil,min=1,dive"`
	SubTotal           *float64        `json:"subTotal" validate:"omitnil,gte=0"`
	Tax                *TaxInput       `json:"tax"`
	Discount           *DiscountInput  `json:"discount"`
	GrandTotal         *float64        `json:"grandTotal" validate:"omitnil,gte=0"`
	TermsAndConditions *string         `json:"termsAndConditions"`
	Notes              *string         `json:"notes"`

	ClearTax                bool `json:"-"`
	ClearDiscount           bool `json:"-"`
	ClearTermsAndConditions bool `json:"-"`
	ClearNotes              bool `json:"-"`
}

// UnmarshalJSON decodes the update and records which optional blocks were
// sent as null
func (in *UpdateQuotationInput) UnmarshalJSON(b []byte) error {
	type plain UpdateQuotationInput
	if err := json.Unmarshal(b, (*plain)(in)); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	isNull := func(key string) bool {
		raw, ok := fields[key]
		return ok && string(bytes.TrimSpace(raw)) == "null"
	}
	in.ClearTax = isNull("tax")
	in.ClearDiscount = isNull("discount")
	in.ClearTermsAndConditions = isNull("termsAndConditions")
	in.ClearNotes = isNull("notes")
	return nil
}

// ListQuotationsInput holds the raw list query of a caller
type ListQuotationsInput struct {
	Page   string
	Limit  string
	Search string
	Status string
}

// PreviewItemInput is the only part of a line item the totals depend on.
// A missing amount counts as zero.
type PreviewItemInput struct {
	Amount *float64 `json:"amount"`
}

// PreviewTotalsInput is the body of a totals preview
type PreviewTotalsInput struct {
	Items         []PreviewItemInput `json:"items" validate:"dive"`
	TaxPercentage *float64           `json:"taxPercentage" validate:"omitnil,gte=0"`
	Discount      *float64           `json:"discount" validate:"omitnil,gte=0"`
}

func (in *CompanyInput) toEntity() entity.CompanyDetails {
	return entity.CompanyDetails{
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		GSTNumber: in.GSTNumber,
	}
}

func (in *CustomerInput) toEntity() entity.CustomerDetails {
	return entity.CustomerDetails{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
		Email:   in.Email,
	}
}

func toLineItems(items []LineItemInput) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	for i, item := range items {
		out[i] = entity.LineItem{
			Description: item.Description,
			Quantity:    deref(item.Quantity),
			Unit:        item.Unit,
			Rate:        deref(item.Rate),
			Amount:      deref(item.Amount),
		}
	}
	return out
}

func (in *TaxInput) toEntity() *entity.Tax {
	if in == nil {
		return nil
	}
	return &entity.Tax{Label: in.Label, Percentage: deref(in.Percentage), Amount: deref(in.Amount)}
}

func (in *DiscountInput) toEntity() *entity.Discount {
	if in == nil {
		return nil
	}
	return &entity.Discount{Label: in.Label, Amount: deref(in.Amount)}
}

func (in *CreateQuotationInput) toEntity(now time.Time) *entity.Quotation {
	date := now
	if t := in.QuotationDate.ptr(); t != nil {
		date = *t
	}
	return &entity.Quotation{
		UserID:             in.UserID,
		QuotationDate:      date,
		CompanyDetails:     in.CompanyDetails.toEntity(),
		CustomerDetails:    in.CustomerDetails.toEntity(),
		Items:              datatypes.JSONSlice[entity.LineItem](toLineItems(in.Items)),
		SubTotal:           deref(in.SubTotal),
		Tax:                in.Tax.toEntity(),
		Discount:           in.Discount.toEntity(),
		GrandTotal:         deref(in.GrandTotal),
		TermsAndConditions: in.TermsAndConditions,
		Notes:              in.Notes,
	}
}

func (in *UpdateQuotationInput) toPatch() *entity.QuotationPatch {
	patch := &entity.QuotationPatch{
		QuotationDate:      in.QuotationDate.ptr(),
		SubTotal:           in.SubTotal,
		Tax:                in.Tax.toEntity(),
		Discount:           in.Discount.toEntity(),
		GrandTotal:         in.GrandTotal,
		TermsAndConditions: in.TermsAndConditions,
		Notes:              in.Notes,

		ClearTax:                in.ClearTax,
		ClearDiscount:           in.ClearDiscount,
		ClearTermsAndConditions: in.ClearTermsAndConditions,
		ClearNotes:              in.ClearNotes,
	}
	if in.CompanyDetails != nil {
		company := in.CompanyDetails.toEntity()
		patch.CompanyDetails = &company
	}
	if in.CustomerDetails != nil {
		customer := in.CustomerDetails.toEntity()
		patch.CustomerDetails = &customer
	}
	if in.Items != nil {
		patch.Items = toLineItems(in.Items)
	}
	return patch
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
