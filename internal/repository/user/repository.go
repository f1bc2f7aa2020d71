package user

import (
	"context"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	Deactivate(ctx context.Context, id string) error
	HasAdmin(ctx context.Context) (bool, error)
}
