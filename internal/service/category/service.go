package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	categoryrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) Create(ctx context.Context, caller domain.User, in Input) (*domain.Category, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	return s.repo.Create(ctx, domain.Category{Name: name, Description: strings.TrimSpace(in.Description)})
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, caller domain.User, id string, in Input) (*domain.Category, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		c.Name = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		c.Description = v
	}
	return s.repo.Update(ctx, *c)
}

// Delete removes a category; its products move to the default category.
func (s *Service) Delete(ctx context.Context, caller domain.User, id string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
