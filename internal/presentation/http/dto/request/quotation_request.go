package request

// QuotationFilterRequest represents the list query of GET /quotations.
// Page and limit stay strings so malformed values fall back to defaults.
type QuotationFilterRequest struct {
	Page   string `form:"page"`
	Limit  string `form:"limit"`
	Search string `form:"search"`
	Status string `form:"status"`
}
