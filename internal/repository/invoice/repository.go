package invoice

import (
	"context"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
)

// ListFilter narrows List results. Empty fields match everything.
type ListFilter struct {
	OwnerID string
	Status  string
}

// Repository persists invoices. Every mutating call runs as a single
// database transaction: line-item stock adjustments either all apply or
// none do, and no intermediate stock state is visible to other callers.
type Repository interface {
	// CreateFromCart snapshots the owner's cart into a new ACTIVE invoice,
	// decrements stock per line item and drains the cart.
	CreateFromCart(ctx context.Context, ownerID string) (*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, f ListFilter) ([]domain.Invoice, error)
	// ReplaceLines reverses the stock effect of the invoice's current lines,
	// installs the given lines and applies their stock effect.
	ReplaceLines(ctx context.Context, id string, lines []domain.InvoiceLine) (*domain.Invoice, error)
	// Void reverses the stock effect of all lines and marks the invoice
	// VOIDED. Voiding a VOIDED invoice fails with domain.ErrAlreadyVoided.
	Void(ctx context.Context, id, reason string) (*domain.Invoice, error)
}
