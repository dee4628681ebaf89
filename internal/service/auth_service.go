package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/feeportal/fee-service/internal/auth"
	"github.com/feeportal/fee-service/internal/config"
	"github.com/feeportal/fee-service/internal/domain"
	"github.com/feeportal/fee-service/internal/repository"
)

// SignupInput carries a new account's details.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Account   *domain.Account
	Token     string
	ExpiresAt time.Time
	Redirect  string
}

// AuthService coordinates signup and login flows.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dummyHash  string
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
}

// NewAuthService builds the service. It hashes a throwaway password once so
// logins for unknown emails cost the same as a real comparison.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	cost := auth.NormalizeCost(cfg.BcryptCost)
	dummy, err := auth.HashPassword("fee-portal-timing-equaliser", cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, auth.AccessTokenTTL),
		bcryptCost: cost,
		dummyHash:  dummy,
	}, nil
}

// Signup validates the role, hashes the password and stores the account.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.Account, error) {
	username := strings.TrimSpace(input.Username)
	email := domain.NormalizeEmail(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}
	if auth.PasswordTooLong(input.Password) {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, auth.MaxPasswordBytes)
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login verifies credentials and issues a one-hour token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if auth.PasswordTooLong(password) {
		return nil, domain.ErrInvalidCredentials
	}
	account, err := s.findForLogin(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = auth.ComparePassword(s.dummyHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		if auth.IsMismatch(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Account:   account,
		Token:     token,
		ExpiresAt: exp,
		Redirect:  account.Role.LandingPage(),
	}, nil
}

// findForLogin looks up the normalised email first, then the address exactly
// as typed, so accounts stored with mixed case before normalisation still resolve.
func (s *AuthService) findForLogin(ctx context.Context, email string) (*domain.Account, error) {
	normalized := domain.NormalizeEmail(email)
	account, err := s.accounts.GetByEmail(ctx, normalized)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return account, err
	}
	if exact := strings.TrimSpace(email); exact != normalized {
		return s.accounts.GetByEmail(ctx, exact)
	}
	return nil, err
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
