package product

import (
	"context"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	ListOutOfStock(ctx context.Context) ([]domain.Product, error)
	ListBestSellers(ctx context.Context, limit int) ([]domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error

	// DecrementStockIfAvailable atomically removes qty units from stock and
	// adds them to units_sold, but only when stock covers qty. It returns
	// domain.ErrInsufficientStock when it does not, and domain.ErrNotFound
	// when the product does not exist. The conditional update is the only
	// race-safe sufficiency check; callers must not pre-read stock and
	// treat that read as authoritative.
	DecrementStockIfAvailable(ctx context.Context, id string, qty int) error

	// RestoreStock reverses a prior decrement: stock grows by qty and
	// units_sold shrinks by qty (floored at zero). Missing products are a
	// no-op so a deleted product never blocks an invoice reversal.
	RestoreStock(ctx context.Context, id string, qty int) error
}
