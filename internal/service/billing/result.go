package billing

import "github.com/heartmarshall/billops-backend/internal/domain"

// GenerateInvoiceResult reports what one generation run committed.
type GenerateInvoiceResult struct {
	LineItems     []domain.InvoiceLineItem
	EntriesBilled int
	SubtotalCents int
	TotalCents    int
}
