package cart

import (
	"context"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
)

type Repository interface {
	// AddItem accumulates quantity onto the user's cart, creating the cart
	// on first use. The unit price is snapshotted from the product.
	AddItem(ctx context.Context, userID string, product domain.Product, quantity int) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
}
