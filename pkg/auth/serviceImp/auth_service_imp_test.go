package serviceImp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/auth/service"
	"github.com/Uvais-khan078/village360/pkg/storage"
	"github.com/Uvais-khan078/village360/pkg/storage/storageImp"
)

func aliceInput() service.RegisterInput {
	return service.RegisterInput{
		Username: "alice", Email: "alice@example.org",
		Password: "secret1", ConfirmPassword: "secret1",
	}
}

func newService() (service.AuthService, service.TokenIssuer, storage.Storage) {
	st := storageImp.NewMemory()
	tokens := NewTokenIssuer("test-secret")
	return New(st, tokens), tokens, st
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenIssuer("k")
	tok, err := tokens.Issue("user-1")
	require.NoError(t, err)

	id, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	_, err = NewTokenIssuer("other").Verify(tok)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = tokens.Verify("not-a-jwt")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenExpires(t *testing.T) {
	issuer := &jwtIssuer{secret: []byte("k"), now: func() time.Time { return time.Now().Add(-TokenTTL - time.Minute) }}
	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)
	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenRejectsUnsignedAlg(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokenIssuer("k").Verify(tok)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", h)
	assert.True(t, CheckPassword(h, "secret1"))
	assert.False(t, CheckPassword(h, "secret2"))
	assert.False(t, CheckPassword("plain", "plain"))
}

func TestRegister(t *testing.T) {
	svc, tokens, _ := newService()
	ctx := context.Background()

	in := aliceInput()
	in.Role = entities.RoleAdmin
	sess, err := svc.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.User.Username)
	assert.Equal(t, entities.RolePublicViewer, sess.User.Role)

	id, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, id)

	_, err = svc.Register(ctx, aliceInput())
	var ve *entities.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Username already exists", ve.Message)

	in = aliceInput()
	in.Username = "alice2"
	_, err = svc.Register(ctx, in)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email already exists", ve.Message)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newService()
	cases := map[string]func(*service.RegisterInput){
		"Passwords don't match":                  func(in *service.RegisterInput) { in.ConfirmPassword = "other1" },
		"Password must be at least 6 characters": func(in *service.RegisterInput) { in.Password, in.ConfirmPassword = "abc", "abc" },
		"Invalid email address":                  func(in *service.RegisterInput) { in.Email = "nope" },
		"Username must be at least 3 characters": func(in *service.RegisterInput) { in.Username = "al" },
	}
	for msg, mutate := range cases {
		in := aliceInput()
		mutate(&in)
		_, err := svc.Register(context.Background(), in)
		var ve *entities.ValidationError
		require.ErrorAs(t, err, &ve, msg)
		assert.Equal(t, msg, ve.Message)
	}
}

func TestCreateUserKeepsRole(t *testing.T) {
	svc, _, _ := newService()
	in := aliceInput()
	in.Role = entities.RoleDistrictOfficer
	in.District = "Pune"
	u, err := svc.CreateUser(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleDistrictOfficer, u.Role)
	assert.Equal(t, "Pune", u.District)

	in = aliceInput()
	in.Username, in.Email, in.Role = "bob", "bob@example.org", "superuser"
	_, err = svc.CreateUser(context.Background(), in)
	var ve *entities.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestLogin(t *testing.T) {
	svc, tokens, _ := newService()
	ctx := context.Background()
	reg, err := svc.Register(ctx, aliceInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	sess, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	id, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id)
}

type brokenUsers struct{ storage.UserStore }

func (brokenUsers) GetUserByUsername(context.Context, string) (*entities.User, error) {
	return nil, errors.New("connection refused")
}

func TestLoginLookupFailureIsNotInvalidCredentials(t *testing.T) {
	svc := New(brokenUsers{storageImp.NewMemory()}, NewTokenIssuer("k"))
	_, err := svc.Login(context.Background(), "alice", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, err := svc.Register(ctx, aliceInput())
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, "alice", "newpass"))
	_, err = svc.Login(ctx, "alice", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "alice", "newpass")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "nobody", "newpass"), storage.ErrNotFound)
	var ve *entities.ValidationError
	assert.ErrorAs(t, svc.ResetPassword(ctx, "alice", "x"), &ve)
}
