package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	tokenrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/token"
	userrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when login/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles registration, login and account management.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo userrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		passwordMin: 8,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// UpdateInput carries profile fields; empty fields keep their value.
type UpdateInput struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Register creates a new client account. Roles are never taken from input;
// promotion goes through UpdateRole.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	username := strings.TrimSpace(in.Username)
	if email == "" {
		return nil, fmt.Errorf("%w: email required", domain.ErrInvalidInput)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.User{
		Name:         strings.TrimSpace(in.Name),
		Surname:      strings.TrimSpace(in.Surname),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleClient,
		Phone:        strings.TrimSpace(in.Phone),
	})
}

// Login validates credentials (username or email) and returns the user plus
// an issued access token.
func (s *Service) Login(ctx context.Context, login, password string) (*domain.User, string, error) {
	u, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, access, nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

// List returns all active users. Admin only.
func (s *Service) List(ctx context.Context, caller domain.User) ([]domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

// Get returns a user by id; clients may only read themselves.
func (s *Service) Get(ctx context.Context, caller domain.User, id string) (*domain.User, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return nil, domain.ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

// Update changes profile fields; clients may only update themselves.
func (s *Service) Update(ctx context.Context, caller domain.User, id string, in UpdateInput) (*domain.User, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return nil, domain.ErrForbidden
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		u.Name = v
	}
	if v := strings.TrimSpace(in.Surname); v != "" {
		u.Surname = v
	}
	if v := strings.TrimSpace(in.Username); v != "" {
		u.Username = v
	}
	if v := strings.TrimSpace(strings.ToLower(in.Email)); v != "" {
		u.Email = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		u.Phone = v
	}
	return s.repo.Update(ctx, *u)
}

// UpdatePassword replaces the caller's password after verifying the current one.
func (s *Service) UpdatePassword(ctx context.Context, caller domain.User, current, next string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(caller.PasswordHash), []byte(strings.TrimSpace(current))); err != nil {
		return ErrInvalidCredentials
	}
	next = strings.TrimSpace(next)
	if err := validatePassword(next, s.passwordMin); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, caller.ID, string(hashed))
}

// UpdateRole promotes or demotes a user. Admin only.
func (s *Service) UpdateRole(ctx context.Context, caller domain.User, id, role string) (*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if role != domain.RoleAdmin && role != domain.RoleClient {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	return s.repo.UpdateRole(ctx, id, role)
}

// Delete deactivates another user's account. Admin only.
func (s *Service) Delete(ctx context.Context, caller domain.User, id string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.repo.Deactivate(ctx, id)
}

// DeleteOwnAccount deactivates the caller's account after password confirmation.
func (s *Service) DeleteOwnAccount(ctx context.Context, caller domain.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(caller.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return ErrInvalidCredentials
	}
	return s.repo.Deactivate(ctx, caller.ID)
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number", domain.ErrInvalidInput)
	}
	return nil
}
