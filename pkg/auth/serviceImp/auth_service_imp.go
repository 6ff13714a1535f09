package serviceImp

import (
	"context"
	"errors"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/auth/service"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

type authService struct {
	users  storage.UserStore
	tokens service.TokenIssuer
}

func New(users storage.UserStore, tokens service.TokenIssuer) service.AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in service.RegisterInput) (*service.Session, error) {
	in.Role = entities.RolePublicViewer
	u, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *authService) CreateUser(ctx context.Context, in service.RegisterInput) (*entities.User, error) {
	return s.create(ctx, in)
}

func (s *authService) create(ctx context.Context, in service.RegisterInput) (*entities.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.available(ctx, s.users.GetUserByUsername, in.Username, "Username already exists"); err != nil {
		return nil, err
	}
	if err := s.available(ctx, s.users.GetUserByEmail, in.Email, "Email already exists"); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.CreateUser(ctx, storage.NewUser{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		District:     in.District,
		Block:        in.Block,
	})
	if errors.Is(err, storage.ErrConflict) {
		// lost a race with a concurrent registration
		return nil, entities.Invalid("Username or email already exists")
	}
	return u, err
}

func (s *authService) available(ctx context.Context, lookup func(context.Context, string) (*entities.User, error), key, taken string) error {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return entities.Invalid("%s", taken)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	}
	return err
}

func (s *authService) Login(ctx context.Context, username, password string) (*service.Session, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, service.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(u.Password, password) {
		return nil, service.ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *authService) ResetPassword(ctx context.Context, username, password string) error {
	if err := service.ValidatePassword(password); err != nil {
		return err
	}
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdateUserPassword(ctx, u.ID, hash)
}

func (s *authService) session(u *entities.User) (*service.Session, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &service.Session{Token: tok, User: u}, nil
}
