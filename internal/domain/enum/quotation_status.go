package enum

// QuotationStatus represents the mutability state of a quotation
type QuotationStatus string

const (
	// QuotationStatusDraft quotations may still be edited or deleted
	QuotationStatusDraft QuotationStatus = "DRAFT"
	// QuotationStatusFinal is terminal; the quotation is read-only
	QuotationStatusFinal QuotationStatus = "FINAL"
)

func (s QuotationStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known status
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusFinal:
		return true
	}
	return false
}

// IsFinal reports whether the quotation can no longer be changed
func (s QuotationStatus) IsFinal() bool {
	return s == QuotationStatusFinal
}

// ParseQuotationStatus returns the status named by raw, or false if raw is not a known status
func ParseQuotationStatus(raw string) (QuotationStatus, bool) {
	s := QuotationStatus(raw)
	return s, s.IsValid()
}
