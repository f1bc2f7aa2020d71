// Package seed bootstraps the records the API expects to exist: one admin
// account and the default product category.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/config"
	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	categoryrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/category"
	userrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

// Run creates the default admin and default category when missing. It is
// idempotent and safe to run on every startup.
func Run(ctx context.Context, cfg config.Config, users userrepo.Repository, categories categoryrepo.Repository, logger *log.Logger) error {
	hasAdmin, err := users.HasAdmin(ctx)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if !hasAdmin {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = users.Create(ctx, domain.User{
			Name:         "Administrator",
			Username:     cfg.AdminUsername,
			Email:        cfg.AdminEmail,
			PasswordHash: string(hashed),
			Role:         domain.RoleAdmin,
		})
		if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("create default admin: %w", err)
		}
		if err == nil {
			logger.Printf("seed: created default admin username=%s", cfg.AdminUsername)
		}
	}

	_, err = categories.GetDefault(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		_, err = categories.Create(ctx, domain.Category{
			Name:        "General",
			Description: "Default category",
			IsDefault:   true,
		})
		if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("create default category: %w", err)
		}
		if err == nil {
			logger.Printf("seed: created default category")
		}
		return nil
	}
	return err
}
