package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
)

type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	AddItem(ctx context.Context, userID string, product domain.Product, quantity int) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// AddItem puts quantity units of a product into the caller's cart. Stock is
// only pre-checked here for early feedback; the binding check is the
// conditional decrement at checkout.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, domain.ErrInsufficientStock
	}
	return s.repo.AddItem(ctx, userID, *product, quantity)
}

// Get returns the caller's cart; users without a cart get an empty one.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{UserID: userID}, nil
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	return s.repo.RemoveItem(ctx, userID, productID)
}
