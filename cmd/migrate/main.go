package main

import (
	"context"
	"log"
	"os"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/config"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/db"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	logger.Printf("migrations applied")
}
