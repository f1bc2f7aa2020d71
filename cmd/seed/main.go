package main

import (
	"context"
	"log"
	"os"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/config"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/db"
	categoryrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/category"
	userrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/user"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgres(pool, logger)
	categories := categoryrepo.NewPostgres(pool)
	if err := seed.Run(ctx, cfg, users, categories, logger); err != nil {
		logger.Fatalf("seed: %v", err)
	}
	logger.Printf("seed complete")
}
