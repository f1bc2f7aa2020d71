package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/config"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/db"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/httpserver"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/migrate"
	cartrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/cart"
	categoryrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/category"
	invoicerepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/invoice"
	productrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/product"
	tokenrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/token"
	userrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/user"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/seed"
	cartsvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/cart"
	categorysvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/category"
	invoicesvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/invoice"
	productsvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/product"
	usersvc "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	users := userrepo.NewPostgres(pool, logger)
	tokens := tokenrepo.NewPostgres(pool)
	categories := categoryrepo.NewPostgres(pool)
	products := productrepo.NewPostgres(pool, logger)
	carts := cartrepo.NewPostgres(pool)
	invoices := invoicerepo.NewPostgres(pool, logger)

	if err := seed.Run(ctx, cfg, users, categories, logger); err != nil {
		logger.Fatalf("seed: %v", err)
	}

	deps := httpserver.Deps{
		UserSvc:     usersvc.New(users, tokens),
		CategorySvc: categorysvc.New(categories),
		ProductSvc:  productsvc.New(products, categories),
		CartSvc:     cartsvc.New(carts, products),
		InvoiceSvc:  invoicesvc.New(invoices),
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, deps)
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}

	go func() {
		logger.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("shutdown: %v", err)
	}
	logger.Printf("stopped")
}
