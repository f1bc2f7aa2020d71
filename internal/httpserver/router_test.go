package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	categorysvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/category"
	invoicesvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/invoice"
	productsvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/product"
	usersvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/user"
	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubUserService struct {
	registered *domain.User
	regErr     error
	loginUser  *domain.User
	loginErr   error
	lookupUser *domain.User
	lookupErr  error
	getUser    *domain.User
	getErr     error
}

func (s *stubUserService) Register(_ context.Context, _ usersvc.RegisterInput) (*domain.User, error) {
	return s.registered, s.regErr
}

func (s *stubUserService) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return s.loginUser, "access-token", s.loginErr
}

func (s *stubUserService) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	return s.lookupUser, s.lookupErr
}

func (s *stubUserService) AccessTTLSeconds() int { return 3600 }

func (s *stubUserService) List(_ context.Context, _ domain.User) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUserService) Get(_ context.Context, _ domain.User, _ string) (*domain.User, error) {
	return s.getUser, s.getErr
}

func (s *stubUserService) Update(_ context.Context, _ domain.User, _ string, _ usersvc.UpdateInput) (*domain.User, error) {
	return s.getUser, s.getErr
}

func (s *stubUserService) UpdatePassword(_ context.Context, _ domain.User, _, _ string) error {
	return nil
}

func (s *stubUserService) UpdateRole(_ context.Context, _ domain.User, _, _ string) (*domain.User, error) {
	return s.getUser, s.getErr
}

func (s *stubUserService) Delete(_ context.Context, _ domain.User, _ string) error { return nil }

func (s *stubUserService) DeleteOwnAccount(_ context.Context, _ domain.User, _ string) error {
	return nil
}

type stubCategoryService struct{}

func (s *stubCategoryService) Create(_ context.Context, _ domain.User, _ categorysvc.Input) (*domain.Category, error) {
	return &domain.Category{}, nil
}

func (s *stubCategoryService) List(_ context.Context) ([]domain.Category, error) { return nil, nil }

func (s *stubCategoryService) Get(_ context.Context, _ string) (*domain.Category, error) {
	return &domain.Category{}, nil
}

func (s *stubCategoryService) Update(_ context.Context, _ domain.User, _ string, _ categorysvc.Input) (*domain.Category, error) {
	return &domain.Category{}, nil
}

func (s *stubCategoryService) Delete(_ context.Context, _ domain.User, _ string) error { return nil }

type stubProductService struct{}

func (s *stubProductService) Create(_ context.Context, _ domain.User, _ productsvc.Input) (*domain.Product, error) {
	return &domain.Product{}, nil
}

func (s *stubProductService) Get(_ context.Context, _ string) (*domain.Product, error) {
	return &domain.Product{}, nil
}

func (s *stubProductService) List(_ context.Context) ([]domain.Product, error) { return nil, nil }

func (s *stubProductService) ListByCategory(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) ListOutOfStock(_ context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) ListBestSellers(_ context.Context, _ int) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) SearchByName(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) Update(_ context.Context, _ domain.User, _ string, _ productsvc.Input) (*domain.Product, error) {
	return &domain.Product{}, nil
}

func (s *stubProductService) Delete(_ context.Context, _ domain.User, _ string) error { return nil }

type stubCartService struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartService) AddItem(_ context.Context, userID, _ string, _ int) (*domain.Cart, error) {
	if s.cart != nil {
		return s.cart, s.err
	}
	return &domain.Cart{UserID: userID}, s.err
}

func (s *stubCartService) Get(_ context.Context, userID string) (*domain.Cart, error) {
	if s.cart != nil {
		return s.cart, s.err
	}
	return &domain.Cart{UserID: userID}, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, userID, _ string) (*domain.Cart, error) {
	if s.cart != nil {
		return s.cart, s.err
	}
	return &domain.Cart{UserID: userID}, s.err
}

type stubInvoiceService struct {
	invoice     *domain.Invoice
	checkoutErr error
	getErr      error
	list        []domain.Invoice
	listErr     error
	editErr     error
	voidErr     error
	lastReason  string
}

func (s *stubInvoiceService) Checkout(_ context.Context, _ string) (*domain.Invoice, error) {
	return s.invoice, s.checkoutErr
}

func (s *stubInvoiceService) Get(_ context.Context, _ domain.User, _ string) (*domain.Invoice, error) {
	return s.invoice, s.getErr
}

func (s *stubInvoiceService) List(_ context.Context, _ domain.User, _, _ string) ([]domain.Invoice, error) {
	return s.list, s.listErr
}

func (s *stubInvoiceService) Edit(_ context.Context, _ domain.User, _ string, _ []invoicesvc.LineInput) (*domain.Invoice, error) {
	return s.invoice, s.editErr
}

func (s *stubInvoiceService) Void(_ context.Context, _ domain.User, _, reason string) (*domain.Invoice, error) {
	s.lastReason = reason
	return s.invoice, s.voidErr
}

func testDeps(users *stubUserService, invoices *stubInvoiceService, carts *stubCartService) Deps {
	if users == nil {
		users = &stubUserService{}
	}
	if invoices == nil {
		invoices = &stubInvoiceService{}
	}
	if carts == nil {
		carts = &stubCartService{}
	}
	return Deps{
		UserSvc:     users,
		CategorySvc: &stubCategoryService{},
		ProductSvc:  &stubProductService{},
		CartSvc:     carts,
		InvoiceSvc:  invoices,
	}
}

func TestBuildRouterRequiresUserService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps(nil, nil, nil)
	deps.UserSvc = nil
	if _, err := buildRouter(logDiscard(), nil, deps); err == nil {
		t.Fatalf("expected error without user service")
	}
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps(nil, nil, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps(nil, nil, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps(nil, nil, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps(nil, nil, nil))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}
