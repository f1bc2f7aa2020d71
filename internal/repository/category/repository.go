package category

import (
	"context"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetDefault(ctx context.Context) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
	// Delete removes the category after moving its products to the default
	// category. The default category itself cannot be deleted.
	Delete(ctx context.Context, id string) error
}
