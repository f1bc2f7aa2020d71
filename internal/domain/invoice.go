package domain

import "time"

// Invoice states. An invoice is created ACTIVE and may transition to
// VOIDED exactly once; VOIDED is terminal.
const (
	InvoiceActive = "ACTIVE"
	InvoiceVoided = "VOIDED"
)

// Invoice is a historical record of a purchase. Line items snapshot product
// name and price at sale time and are never resynchronized to live data.
type Invoice struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"ownerId"`
	Lines      []InvoiceLine `json:"lines"`
	TotalCents int64         `json:"totalCents"`
	Status     string        `json:"status"`
	VoidReason string        `json:"voidReason,omitempty"`
	VoidedAt   *time.Time    `json:"voidedAt,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type InvoiceLine struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// LinesTotalCents derives the invoice total from its line items. Totals
// are never trusted from input.
func LinesTotalCents(lines []InvoiceLine) int64 {
	var total int64
	for _, l := range lines {
		total += int64(l.Quantity) * l.UnitPriceCents
	}
	return total
}
