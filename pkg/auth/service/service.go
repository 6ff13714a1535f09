package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type AuthService interface {
	// Register always creates a public_viewer; RegisterInput.Role is ignored.
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	// CreateUser is the admin path and keeps the requested role.
	CreateUser(ctx context.Context, in RegisterInput) (*entities.User, error)
	ResetPassword(ctx context.Context, username, password string) error
}

// TokenIssuer signs and verifies session tokens that carry a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (userID string, err error)
}

type Session struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

const MinPasswordLength = 6

type RegisterInput struct {
	Username        string        `json:"username" validate:"min=3"`
	Email           string        `json:"email" validate:"email"`
	Password        string        `json:"password" validate:"min=6"`
	ConfirmPassword string        `json:"confirmPassword" validate:"eqfield=Password" msg:"Passwords don't match"`
	Role            entities.Role `json:"role" validate:"omitempty,oneof=admin district_officer block_officer public_viewer"`
	District        string        `json:"district"`
	Block           string        `json:"block"`
}

func (in *RegisterInput) Validate() error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	return validation.Struct(in)
}

func ValidatePassword(p string) error {
	if !validation.Var(p, "min=6") {
		return entities.Invalid("Password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
