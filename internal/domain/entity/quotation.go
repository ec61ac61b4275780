package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotify-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quotation represents a price quotation issued by a company to a customer
type Quotation struct {
	ID                 uuid.UUID                     `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID                     `gorm:"type:uuid;not null;index" json:"userId"`
	QuotationNumber    string                        `gorm:"size:32;not null;uniqueIndex" json:"quotationNumber"`
	QuotationDate      time.Time                     `gorm:"not null" json:"quotationDate"`
	CompanyDetails     CompanyDetails                `gorm:"embedded;embeddedPrefix:company_" json:"companyDetails"`
	CustomerDetails    CustomerDetails               `gorm:"embedded;embeddedPrefix:customer_" json:"customerDetails"`
	Items              datatypes.JSONSlice[LineItem] `gorm:"not null" json:"items"`
	SubTotal           float64                       `gorm:"type:decimal(15,2);not null" json:"subTotal"`
	Tax                *Tax                          `gorm:"serializer:json" json:"tax,omitempty"`
	Discount           *Discount                     `gorm:"serializer:json" json:"discount,omitempty"`
	GrandTotal         float64                       `gorm:"type:decimal(15,2);not null" json:"grandTotal"`
	TermsAndConditions *string                       `gorm:"type:text" json:"termsAndConditions,omitempty"`
	Notes              *string                       `gorm:"type:text" json:"notes,omitempty"`
	Status             enum.QuotationStatus          `gorm:"size:10;not null;index" json:"status"`
	CreatedAt          time.Time                     `gorm:"index" json:"createdAt"`
	UpdatedAt          time.Time                     `json:"updatedAt"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// CompanyDetails identifies the issuing company
type CompanyDetails struct {
	Name      string  `gorm:"size:255;not null" json:"name"`
	Address   *string `gorm:"type:text" json:"address,omitempty"`
	Phone     *string `gorm:"size:50" json:"phone,omitempty"`
	Email     *string `gorm:"size:255" json:"email,omitempty"`
	GSTNumber *string `gorm:"column:gst_number;size:50" json:"gstNumber,omitempty"`
}

// CustomerDetails identifies the quoted customer
type CustomerDetails struct {
	Name    string  `gorm:"size:255;not null" json:"name"`
	Address *string `gorm:"type:text" json:"address,omitempty"`
	Phone   *string `gorm:"size:50" json:"phone,omitempty"`
	Email   *string `gorm:"size:255" json:"email,omitempty"`
}

// LineItem is one priced row of a quotation. Amount is expected to equal
// Quantity × Rate but is stored as supplied.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Tax is the optional tax applied to a quotation
type Tax struct {
	Label      string  `json:"label,omitempty"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// Discount is the optional flat discount applied to a quotation
type Discount struct {
	Label  string  `json:"label,omitempty"`
	Amount float64 `json:"amount"`
}

// BeforeCreate generates a UUID and defaults the status before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Status == "" {
		q.Status = enum.QuotationStatusDraft
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// IsFinal reports whether the quotation has been finalized
func (q *Quotation) IsFinal() bool {
	return q.Status.IsFinal()
}

// ItemAmounts returns the amount of every line item in order
func (q *Quotation) ItemAmounts() []float64 {
	amounts := make([]float64, len(q.Items))
	for i, item := range q.Items {
		amounts[i] = item.Amount
	}
	return amounts
}
