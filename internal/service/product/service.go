package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	categoryrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/category"
	productrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/product"
)

const defaultBestSellerLimit = 10

type Service struct {
	repo       productrepo.Repository
	categories categoryrepo.Repository
}

func New(repo productrepo.Repository, categories categoryrepo.Repository) *Service {
	return &Service{repo: repo, categories: categories}
}

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Stock       int    `json:"stock"`
	CategoryID  string `json:"categoryId"`
}

func (s *Service) Create(ctx context.Context, caller domain.User, in Input) (*domain.Product, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	categoryID := in.CategoryID
	if categoryID == "" {
		def, err := s.categories.GetDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve default category: %w", err)
		}
		categoryID = def.ID
	} else if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", domain.ErrNotFound, categoryID)
		}
		return nil, err
	}

	return s.repo.Create(ctx, domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		CategoryID:  categoryID,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *Service) ListOutOfStock(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListOutOfStock(ctx)
}

func (s *Service) ListBestSellers(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultBestSellerLimit
	}
	return s.repo.ListBestSellers(ctx, limit)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	return s.repo.SearchByName(ctx, name)
}

func (s *Service) Update(ctx context.Context, caller domain.User, id string, in Input) (*domain.Product, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		p.Description = v
	}
	if in.PriceCents > 0 {
		p.PriceCents = in.PriceCents
	}
	if in.Stock >= 0 {
		p.Stock = in.Stock
	}
	if in.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = in.CategoryID
	}
	return s.repo.Update(ctx, *p)
}

func (s *Service) Delete(ctx context.Context, caller domain.User, id string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func validateInput(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if in.PriceCents <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
