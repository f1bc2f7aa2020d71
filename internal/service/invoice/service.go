package invoice

import (
	"context"
	"fmt"
	"strings"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	invoicerepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/invoice"
)

const defaultVoidReason = "no reason given"

// Service drives the invoice lifecycle: checkout creates an ACTIVE invoice
// and consumes stock, edit swaps its line items (reverse then reapply), and
// void terminally reverses it. All stock mutation is delegated to the
// repository, which applies each operation as one transaction.
type Service struct {
	repo invoiceRepo
}

type invoiceRepo interface {
	CreateFromCart(ctx context.Context, ownerID string) (*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, f invoicerepo.ListFilter) ([]domain.Invoice, error)
	ReplaceLines(ctx context.Context, id string, lines []domain.InvoiceLine) (*domain.Invoice, error)
	Void(ctx context.Context, id, reason string) (*domain.Invoice, error)
}

func New(repo invoicerepo.Repository) *Service {
	return &Service{repo: repo}
}

// LineInput is a replacement line item for Edit. Every field is required:
// edited invoices keep snapshot semantics, so name and price come from the
// caller, not from live product data.
type LineInput struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// Checkout turns the caller's cart into an ACTIVE invoice. The cart must be
// non-empty and every line's stock decrement must succeed; otherwise nothing
// is applied.
func (s *Service) Checkout(ctx context.Context, ownerID string) (*domain.Invoice, error) {
	return s.repo.CreateFromCart(ctx, ownerID)
}

// Get returns one invoice; clients may only read their own.
func (s *Service) Get(ctx context.Context, caller domain.User, id string) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && inv.OwnerID != caller.ID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// List returns invoices, optionally filtered by status and owner. Clients
// are always pinned to their own invoices regardless of the owner filter.
func (s *Service) List(ctx context.Context, caller domain.User, status, ownerID string) ([]domain.Invoice, error) {
	f := invoicerepo.ListFilter{OwnerID: ownerID}
	if !caller.IsAdmin() {
		f.OwnerID = caller.ID
	}
	// Unknown status values are ignored rather than rejected.
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case domain.InvoiceActive:
		f.Status = domain.InvoiceActive
	case domain.InvoiceVoided:
		f.Status = domain.InvoiceVoided
	}
	return s.repo.List(ctx, f)
}

// Edit replaces the line items of an ACTIVE invoice. The stock effect of the
// current lines is reversed and the new lines' effect applied in one
// transaction, so the net result equals a diff without the transient state
// ever being observable.
func (s *Service) Edit(ctx context.Context, caller domain.User, id string, lines []LineInput) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && inv.OwnerID != caller.ID {
		return nil, domain.ErrForbidden
	}
	if inv.Status == domain.InvoiceVoided {
		return nil, domain.ErrAlreadyVoided
	}

	replacement, err := validateLines(lines)
	if err != nil {
		return nil, err
	}
	return s.repo.ReplaceLines(ctx, id, replacement)
}

// Void marks an ACTIVE invoice VOIDED and restores its stock. VOIDED is
// terminal; a second void is rejected with no side effect.
func (s *Service) Void(ctx context.Context, caller domain.User, id, reason string) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && inv.OwnerID != caller.ID {
		return nil, domain.ErrForbidden
	}
	if inv.Status == domain.InvoiceVoided {
		return nil, domain.ErrAlreadyVoided
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultVoidReason
	}
	return s.repo.Void(ctx, id, reason)
}

func validateLines(lines []LineInput) ([]domain.InvoiceLine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: line items required", domain.ErrInvalidInput)
	}
	out := make([]domain.InvoiceLine, 0, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" {
			return nil, fmt.Errorf("%w: line %d: productId required", domain.ErrInvalidInput, i)
		}
		if strings.TrimSpace(l.ProductName) == "" {
			return nil, fmt.Errorf("%w: line %d: productName required", domain.ErrInvalidInput, i)
		}
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: line %d: quantity must be at least 1", domain.ErrInvalidInput, i)
		}
		if l.UnitPriceCents <= 0 {
			return nil, fmt.Errorf("%w: line %d: unit price must be positive", domain.ErrInvalidInput, i)
		}
		out = append(out, domain.InvoiceLine{
			ProductID:      l.ProductID,
			ProductName:    strings.TrimSpace(l.ProductName),
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}
	return out, nil
}
