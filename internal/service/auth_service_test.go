package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/feeportal/fee-service/internal/auth"
	"github.com/feeportal/fee-service/internal/config"
	"github.com/feeportal/fee-service/internal/domain"
	"github.com/feeportal/fee-service/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, *repository.MemoryAccountRepository) {
	t.Helper()
	repo := repository.NewMemoryAccountRepository()
	svc, err := NewAuthService(config.AuthConfig{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}, AuthDependencies{AccountRepo: repo})
	require.NoError(t, err)
	return svc, repo
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.AuthConfig{}, AuthDependencies{AccountRepo: repository.NewMemoryAccountRepository()})
	assert.Error(t, err)
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	cases := []struct {
		role     string
		redirect string
	}{
		{"student", domain.LandingMain},
		{"faculty", domain.LandingFaculty},
		{"hod", domain.LandingHOD},
	}
	for i, tc := range cases {
		email := fmt.Sprintf("user%d@uni.edu", i)
		account, err := svc.Signup(ctx, SignupInput{Username: "u", Email: email, Password: "pw-" + tc.role, Role: tc.role})
		require.NoError(t, err, tc.role)
		assert.NotEqual(t, "pw-"+tc.role, account.PasswordHash)

		result, err := svc.Login(ctx, email, "pw-"+tc.role)
		require.NoError(t, err, tc.role)
		assert.Equal(t, tc.redirect, result.Redirect)
		assert.Equal(t, domain.Role(tc.role), result.Account.Role)

		claims, err := svc.TokenManager().ParseToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, claims.Subject)
		assert.Equal(t, domain.Role(tc.role), claims.Role)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAuthService(t)

	_, err := svc.Signup(ctx, SignupInput{Username: "a", Email: "dup@uni.edu", Password: "x", Role: "student"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Username: "b", Email: " DUP@uni.edu", Password: "y", Role: "faculty"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Equal(t, 1, repo.Count())
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, repo := newAuthService(t)

	_, err := svc.Signup(context.Background(), SignupInput{Username: "a", Email: "a@uni.edu", Password: "x", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	assert.Equal(t, 0, repo.Count())
}

func TestSignupRequiresFields(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), SignupInput{Email: "a@uni.edu", Password: "x", Role: "student"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.Signup(ctx, SignupInput{Username: "a", Email: "a@uni.edu", Password: "correct horse", Role: "student"})
	require.NoError(t, err)

	for _, pw := range []string{"", "correct", "correct horse ", "CORRECT HORSE"} {
		_, err := svc.Login(ctx, "a@uni.edu", pw)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, pw)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "nobody@uni.edu", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAuthService(t)

	_, err := svc.Signup(ctx, SignupInput{Username: "a", Email: "a@uni.edu", Password: strings.Repeat("a", 80), Role: "student"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, repo.Count())

	_, err = svc.Signup(ctx, SignupInput{Username: "a", Email: "a@uni.edu", Password: strings.Repeat("a", auth.MaxPasswordBytes), Role: "student"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "a@uni.edu", strings.Repeat("a", auth.MaxPasswordBytes))
	require.NoError(t, err)
}

func TestLoginOverlongPasswordIsInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.Signup(ctx, SignupInput{Username: "a", Email: "a@uni.edu", Password: "short", Role: "student"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@uni.edu", strings.Repeat("a", 80))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginFindsLegacyMixedCaseEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAuthService(t)

	hash, err := auth.HashPassword("legacy-pw", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &domain.Account{
		Username:     "legacy",
		Email:        "Legacy.User@Uni.edu",
		PasswordHash: hash,
		Role:         domain.RoleFaculty,
	}))

	result, err := svc.Login(ctx, " Legacy.User@Uni.edu ", "legacy-pw")
	require.NoError(t, err)
	assert.Equal(t, "legacy", result.Account.Username)

	_, err = svc.Login(ctx, "Legacy.User@Uni.edu", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
