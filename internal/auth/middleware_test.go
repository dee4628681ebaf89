package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feeportal/fee-service/internal/domain"
	apperrors "github.com/feeportal/fee-service/pkg/util"
)

type stubAccounts map[string]*domain.Account

func (s stubAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if acc, ok := s[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrNotFound
}

func newTestApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	accounts := stubAccounts{
		"stu": {ID: "stu", Username: "sam", Role: domain.RoleStudent},
		"fac": {ID: "fac", Username: "fran", Role: domain.RoleFaculty},
	}
	mw := NewAuthMiddleware(tm, accounts)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/any", mw.Handle, RequireAnyRole(), func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return c.SendString(p.Account.Username)
	})
	app.Get("/faculty", mw.Handle, RequireRole(domain.RoleFaculty), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMiddlewareRequiresToken(t *testing.T) {
	app := newTestApp(t, NewTokenManager("k", time.Hour))

	resp := doGet(t, app, "/any", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doGet(t, app, "/any", "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareLoadsPrincipal(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	app := newTestApp(t, tm)

	token, _, err := tm.GenerateToken("stu", domain.RoleStudent)
	require.NoError(t, err)

	resp := doGet(t, app, "/any", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareUnknownAccount(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	app := newTestApp(t, tm)

	token, _, err := tm.GenerateToken("ghost", domain.RoleHOD)
	require.NoError(t, err)

	resp := doGet(t, app, "/any", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	app := newTestApp(t, tm)

	studentToken, _, err := tm.GenerateToken("stu", domain.RoleStudent)
	require.NoError(t, err)
	facultyToken, _, err := tm.GenerateToken("fac", domain.RoleFaculty)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(t, app, "/faculty", studentToken).StatusCode)
	assert.Equal(t, http.StatusNoContent, doGet(t, app, "/faculty", facultyToken).StatusCode)
}

func TestRoleComesFromStoredAccount(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	app := newTestApp(t, tm)

	// claim says faculty, stored account is a student
	forged, _, err := tm.GenerateToken("stu", domain.RoleFaculty)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(t, app, "/faculty", forged).StatusCode)
}
