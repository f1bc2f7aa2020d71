package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
)

type stubCartRepo struct {
	cart        *domain.Cart
	addErr      error
	getErr      error
	removeErr   error
	lastUserID  string
	lastProduct domain.Product
	lastQty     int
}

func (s *stubCartRepo) AddItem(_ context.Context, userID string, product domain.Product, quantity int) (*domain.Cart, error) {
	s.lastUserID = userID
	s.lastProduct = product
	s.lastQty = quantity
	return s.cart, s.addErr
}

func (s *stubCartRepo) GetByUser(_ context.Context, userID string) (*domain.Cart, error) {
	s.lastUserID = userID
	return s.cart, s.getErr
}

func (s *stubCartRepo) RemoveItem(_ context.Context, userID, _ string) (*domain.Cart, error) {
	s.lastUserID = userID
	return s.cart, s.removeErr
}

type stubProductRepo struct {
	product *domain.Product
	err     error
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func TestAddItemHappyPath(t *testing.T) {
	product := &domain.Product{ID: "p1", Name: "Widget", PriceCents: 500, Stock: 10}
	repo := &stubCartRepo{cart: &domain.Cart{UserID: "u1"}}
	svc := New(repo, &stubProductRepo{product: product})

	cart, err := svc.AddItem(context.Background(), "u1", "p1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart == nil || repo.lastQty != 3 || repo.lastProduct.ID != "p1" {
		t.Fatalf("add not delegated as expected: qty=%d product=%s", repo.lastQty, repo.lastProduct.ID)
	}
}

func TestAddItemNonPositiveQuantity(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{})
	_, err := svc.AddItem(context.Background(), "u1", "p1", 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{err: domain.ErrNotFound})
	_, err := svc.AddItem(context.Background(), "u1", "missing", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddItemInsufficientStock(t *testing.T) {
	product := &domain.Product{ID: "p1", Stock: 2}
	svc := New(&stubCartRepo{}, &stubProductRepo{product: product})

	_, err := svc.AddItem(context.Background(), "u1", "p1", 3)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
}

func TestGetReturnsEmptyCartWhenMissing(t *testing.T) {
	svc := New(&stubCartRepo{getErr: domain.ErrNotFound}, &stubProductRepo{})
	cart, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.UserID != "u1" || len(cart.Items) != 0 {
		t.Fatalf("expected empty cart for u1, got %+v", cart)
	}
}

func TestGetPropagatesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&stubCartRepo{getErr: boom}, &stubProductRepo{})
	if _, err := svc.Get(context.Background(), "u1"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestRemoveItemDelegates(t *testing.T) {
	repo := &stubCartRepo{cart: &domain.Cart{UserID: "u1"}}
	svc := New(repo, &stubProductRepo{})
	cart, err := svc.RemoveItem(context.Background(), "u1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart == nil || repo.lastUserID != "u1" {
		t.Fatalf("remove not delegated: %+v", repo)
	}
}
