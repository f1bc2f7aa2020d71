package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	categorysvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/category"
	invoicesvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/invoice"
	productsvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/product"
	usersvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserService is the slice of the user service the handlers need.
type UserService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, login, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
	List(ctx context.Context, caller domain.User) ([]domain.User, error)
	Get(ctx context.Context, caller domain.User, id string) (*domain.User, error)
	Update(ctx context.Context, caller domain.User, id string, in usersvc.UpdateInput) (*domain.User, error)
	UpdatePassword(ctx context.Context, caller domain.User, current, next string) error
	UpdateRole(ctx context.Context, caller domain.User, id, role string) (*domain.User, error)
	Delete(ctx context.Context, caller domain.User, id string) error
	DeleteOwnAccount(ctx context.Context, caller domain.User, password string) error
}

type CategoryService interface {
	Create(ctx context.Context, caller domain.User, in categorysvc.Input) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, caller domain.User, id string, in categorysvc.Input) (*domain.Category, error)
	Delete(ctx context.Context, caller domain.User, id string) error
}

type ProductService interface {
	Create(ctx context.Context, caller domain.User, in productsvc.Input) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	ListOutOfStock(ctx context.Context) ([]domain.Product, error)
	ListBestSellers(ctx context.Context, limit int) ([]domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]domain.Product, error)
	Update(ctx context.Context, caller domain.User, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, caller domain.User, id string) error
}

type CartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
}

type InvoiceService interface {
	Checkout(ctx context.Context, ownerID string) (*domain.Invoice, error)
	Get(ctx context.Context, caller domain.User, id string) (*domain.Invoice, error)
	List(ctx context.Context, caller domain.User, status, ownerID string) ([]domain.Invoice, error)
	Edit(ctx context.Context, caller domain.User, id string, lines []invoicesvc.LineInput) (*domain.Invoice, error)
	Void(ctx context.Context, caller domain.User, id, reason string) (*domain.Invoice, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	UserSvc     UserService
	CategorySvc CategoryService
	ProductSvc  ProductService
	CartSvc     CartService
	InvoiceSvc  InvoiceService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.UserSvc == nil {
		return nil, errors.New("user service required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())
	router.Use(requestID())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/register", registerHandler(deps.UserSvc))
	router.POST("/auth/login", loginHandler(deps.UserSvc))

	authed := router.Group("/", authRequired(deps.UserSvc))

	users := authed.Group("/users")
	users.GET("", listUsersHandler(deps.UserSvc))
	users.GET("/:id", getUserHandler(deps.UserSvc))
	users.PUT("/:id", updateUserHandler(deps.UserSvc))
	users.PATCH("/password", updatePasswordHandler(deps.UserSvc))
	users.PATCH("/:id/role", updateRoleHandler(deps.UserSvc))
	users.DELETE("/:id", deleteUserHandler(deps.UserSvc))
	users.DELETE("", deleteOwnAccountHandler(deps.UserSvc))

	categories := authed.Group("/categories")
	categories.POST("", createCategoryHandler(deps.CategorySvc))
	categories.GET("", listCategoriesHandler(deps.CategorySvc))
	categories.GET("/:id", getCategoryHandler(deps.CategorySvc))
	categories.PUT("/:id", updateCategoryHandler(deps.CategorySvc))
	categories.DELETE("/:id", deleteCategoryHandler(deps.CategorySvc))

	products := authed.Group("/products")
	products.POST("", createProductHandler(deps.ProductSvc))
	products.GET("", listProductsHandler(deps.ProductSvc))
	products.GET("/out-of-stock", outOfStockHandler(deps.ProductSvc))
	products.GET("/best-sellers", bestSellersHandler(deps.ProductSvc))
	products.GET("/search", searchProductsHandler(deps.ProductSvc))
	products.GET("/by-category/:id", productsByCategoryHandler(deps.ProductSvc))
	products.GET("/:id", getProductHandler(deps.ProductSvc))
	products.PUT("/:id", updateProductHandler(deps.ProductSvc))
	products.DELETE("/:id", deleteProductHandler(deps.ProductSvc))

	cart := authed.Group("/cart")
	cart.POST("/items", addCartItemHandler(deps.CartSvc))
	cart.GET("", getCartHandler(deps.CartSvc))
	cart.DELETE("/items/:productId", removeCartItemHandler(deps.CartSvc))

	invoices := authed.Group("/invoices")
	invoices.POST("/checkout", checkoutHandler(deps.InvoiceSvc))
	invoices.GET("", listInvoicesHandler(deps.InvoiceSvc))
	invoices.GET("/:id", getInvoiceHandler(deps.InvoiceSvc))
	invoices.PUT("/:id", editInvoiceHandler(deps.InvoiceSvc))
	invoices.PATCH("/:id/void", voidInvoiceHandler(deps.InvoiceSvc))
	invoices.GET("/:id/pdf", invoicePDFHandler(deps.InvoiceSvc, deps.UserSvc))

	return router, nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
	case errors.Is(err, domain.ErrAlreadyVoided):
		c.JSON(http.StatusConflict, gin.H{"error": "invoice already voided"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
