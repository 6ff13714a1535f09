package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/auth/serviceImp"
	"github.com/Uvais-khan078/village360/pkg/httpapi"
	"github.com/Uvais-khan078/village360/pkg/storage"
	"github.com/Uvais-khan078/village360/pkg/storage/storageImp"
)

type failingUsers struct{ storage.UserStore }

func (failingUsers) GetUser(context.Context, string) (*entities.User, error) {
	return nil, errors.New("db down")
}

func setup(t *testing.T, users storage.UserStore) (*echo.Echo, *entities.User, string) {
	t.Helper()
	st := storageImp.NewMemory()
	u, err := st.CreateUser(context.Background(), storage.NewUser{Username: "dana", Email: "dana@x.org", PasswordHash: "h", Role: entities.RoleBlockOfficer})
	require.NoError(t, err)
	if users == nil {
		users = st
	}
	tokens := serviceImp.NewTokenIssuer("k")
	tok, err := tokens.Issue(u.ID)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = httpapi.ErrorHandler(zap.NewNop())
	g := e.Group("", Authenticate(tokens, users))
	g.GET("/me", func(c echo.Context) error { return c.JSON(http.StatusOK, httpapi.CurrentUser(c)) })
	g.GET("/officers", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
		RequireRole(entities.Officers...))
	g.GET("/admins", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
		RequireRole(entities.RoleAdmin))
	return e, u, tok
}

func get(e *echo.Echo, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	e, u, tok := setup(t, nil)

	rec := get(e, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Access token required"}`, rec.Body.String())

	rec = get(e, "/me", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(e, "/me", "Bearer garbage")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())

	rec = get(e, "/me", "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), u.ID)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthenticateUnknownUser(t *testing.T) {
	e, _, _ := setup(t, nil)
	tok, err := serviceImp.NewTokenIssuer("k").Issue("deleted-user")
	require.NoError(t, err)
	rec := get(e, "/me", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

func TestAuthenticateLookupFailure(t *testing.T) {
	e, _, tok := setup(t, failingUsers{})
	rec := get(e, "/me", "Bearer "+tok)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Authentication lookup failed"}`, rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	e, _, tok := setup(t, nil)

	assert.Equal(t, http.StatusNoContent, get(e, "/officers", "Bearer "+tok).Code)

	rec := get(e, "/admins", "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Insufficient permissions"}`, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(e, "/admins", "").Code)
}

func TestRequireRoleWithoutUser(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := RequireRole(entities.RoleAdmin)(func(echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
