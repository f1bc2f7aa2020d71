package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	tokenrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	created      *domain.User
	createErr    error
	lastCreate   domain.User
	byLogin      *domain.User
	byLoginErr   error
	byID         *domain.User
	byIDErr      error
	updated      *domain.User
	updateErr    error
	lastUpdate   domain.User
	roleUser     *domain.User
	roleErr      error
	lastRoleID   string
	lastRole     string
	deactivated  []string
	passwordID   string
	passwordHash string
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	s.lastCreate = u
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := u
	out.ID = "new-id"
	return &out, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return s.byID, s.byIDErr
}

func (s *stubUserRepo) GetByLogin(_ context.Context, _ string) (*domain.User, error) {
	return s.byLogin, s.byLoginErr
}

func (s *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Update(_ context.Context, u domain.User) (*domain.User, error) {
	s.lastUpdate = u
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.updated != nil {
		return s.updated, nil
	}
	return &u, nil
}

func (s *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	s.passwordID = id
	s.passwordHash = hash
	return nil
}

func (s *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	s.lastRoleID = id
	s.lastRole = role
	return s.roleUser, s.roleErr
}

func (s *stubUserRepo) Deactivate(_ context.Context, id string) error {
	s.deactivated = append(s.deactivated, id)
	return nil
}

func (s *stubUserRepo) HasAdmin(_ context.Context) (bool, error) {
	return true, nil
}

type stubTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (s *stubTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := s.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *stubTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *stubTokenRepo) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

func TestRegisterForcesClientRole(t *testing.T) {
	repo := &stubUserRepo{}
	svc := New(repo, newStubTokenRepo())

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Username: "ana",
		Email:    "Ana@Example.com",
		Password: "Password1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != domain.RoleClient {
		t.Fatalf("expected client role, got %s", u.Role)
	}
	if repo.lastCreate.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %s", repo.lastCreate.Email)
	}
	if repo.lastCreate.PasswordHash == "Password1" || repo.lastCreate.PasswordHash == "" {
		t.Fatalf("password not hashed")
	}
}

func TestRegisterPasswordPolicy(t *testing.T) {
	svc := New(&stubUserRepo{}, newStubTokenRepo())

	cases := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, password := range cases {
		_, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Ana",
			Username: "ana",
			Email:    "ana@example.com",
			Password: password,
		})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("password %q: expected invalid input, got %v", password, err)
		}
	}
}

func TestRegisterRequiredFields(t *testing.T) {
	svc := New(&stubUserRepo{}, newStubTokenRepo())
	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Username: "ana", Password: "Password1"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing email, got %v", err)
	}
}

func TestLoginHappyPath(t *testing.T) {
	u := &domain.User{ID: "u1", Username: "ana", PasswordHash: hash(t, "Password1"), Role: domain.RoleClient}
	tokens := newStubTokenRepo()
	svc := New(&stubUserRepo{byLogin: u}, tokens)

	got, access, err := svc.Login(context.Background(), "ana", "Password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "u1" || access == "" {
		t.Fatalf("unexpected result: %+v token=%q", got, access)
	}
	stored, ok := tokens.tokens[access]
	if !ok || stored.UserID != "u1" || stored.Kind != "access" {
		t.Fatalf("token not persisted correctly: %+v", stored)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	u := &domain.User{ID: "u1", PasswordHash: hash(t, "Password1")}
	svc := New(&stubUserRepo{byLogin: u}, newStubTokenRepo())

	_, _, err := svc.Login(context.Background(), "ana", "WrongPass1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := New(&stubUserRepo{byLoginErr: domain.ErrNotFound}, newStubTokenRepo())
	_, _, err := svc.Login(context.Background(), "ghost", "Password1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLookupByToken(t *testing.T) {
	u := &domain.User{ID: "u1", Username: "ana"}
	tokens := newStubTokenRepo()
	tokens.tokens["tok"] = tokenrepo.Token{Token: "tok", UserID: "u1", Kind: "access", ExpiresAt: time.Now().Add(time.Hour)}
	svc := New(&stubUserRepo{byID: u}, tokens)

	got, err := svc.LookupByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestLookupByTokenExpired(t *testing.T) {
	tokens := newStubTokenRepo()
	tokens.tokens["tok"] = tokenrepo.Token{Token: "tok", UserID: "u1", Kind: "access", ExpiresAt: time.Now().Add(-time.Minute)}
	svc := New(&stubUserRepo{}, tokens)

	if _, err := svc.LookupByToken(context.Background(), "tok"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, ok := tokens.tokens["tok"]; ok {
		t.Fatalf("expired token should be deleted")
	}
}

func TestListAdminOnly(t *testing.T) {
	svc := New(&stubUserRepo{}, newStubTokenRepo())
	if _, err := svc.List(context.Background(), domain.User{Role: domain.RoleClient}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGetSelfAllowed(t *testing.T) {
	u := &domain.User{ID: "u1"}
	svc := New(&stubUserRepo{byID: u}, newStubTokenRepo())
	if _, err := svc.Get(context.Background(), domain.User{ID: "u1", Role: domain.RoleClient}, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), domain.User{ID: "u2", Role: domain.RoleClient}, "u1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	existing := &domain.User{ID: "u1", Name: "Ana", Surname: "García", Email: "ana@example.com"}
	repo := &stubUserRepo{byID: existing}
	svc := New(repo, newStubTokenRepo())

	_, err := svc.Update(context.Background(), domain.User{ID: "u1", Role: domain.RoleClient}, "u1", UpdateInput{Name: "Ana María"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastUpdate.Name != "Ana María" || repo.lastUpdate.Surname != "García" {
		t.Fatalf("unexpected update: %+v", repo.lastUpdate)
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	svc := New(&stubUserRepo{roleUser: &domain.User{ID: "u1"}}, newStubTokenRepo())
	adminUser := domain.User{ID: "a1", Role: domain.RoleAdmin}

	if _, err := svc.UpdateRole(context.Background(), adminUser, "u1", "SUPER_ROLE"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), domain.User{Role: domain.RoleClient}, "u1", domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), adminUser, "u1", domain.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := New(repo, newStubTokenRepo())
	caller := domain.User{ID: "u1", PasswordHash: hash(t, "OldPass1x")}

	if err := svc.UpdatePassword(context.Background(), caller, "wrong", "NewPass1x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := svc.UpdatePassword(context.Background(), caller, "OldPass1x", "weak"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := svc.UpdatePassword(context.Background(), caller, "OldPass1x", "NewPass1x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.passwordID != "u1" || repo.passwordHash == "" {
		t.Fatalf("password not updated: %+v", repo)
	}
}

func TestDeleteOwnAccount(t *testing.T) {
	repo := &stubUserRepo{}
	svc := New(repo, newStubTokenRepo())
	caller := domain.User{ID: "u1", PasswordHash: hash(t, "Password1")}

	if err := svc.DeleteOwnAccount(context.Background(), caller, "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := svc.DeleteOwnAccount(context.Background(), caller, "Password1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deactivated) != 1 || repo.deactivated[0] != "u1" {
		t.Fatalf("unexpected deactivations: %v", repo.deactivated)
	}
}
