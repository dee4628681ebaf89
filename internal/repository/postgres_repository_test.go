package repository

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/feeportal/fee-service/internal/domain"
	"github.com/feeportal/fee-service/internal/persistence"
)

// newTestPool connects to FEEPORTAL_TEST_POSTGRES_DSN, migrates, and empties
// the tables. Tests are skipped when the variable is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("FEEPORTAL_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FEEPORTAL_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, zap.NewNop()))
	_, err = pool.Exec(ctx, `TRUNCATE fee_requests, accounts`)
	require.NoError(t, err)
	return pool
}

func TestPostgresAccountRepository(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewPostgresAccountRepository(pool)

	account := &domain.Account{Username: "sam", Email: "sam@uni.edu", PasswordHash: "hash", Role: domain.RoleStudent}
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEmpty(t, account.ID)

	err := repo.Create(ctx, &domain.Account{Username: "other", Email: "sam@uni.edu", PasswordHash: "x", Role: domain.RoleHOD})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	got, err := repo.GetByEmail(ctx, "sam@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresFeeRequestTransitions(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewPostgresFeeRequestRepository(pool)

	first := &domain.FeeRequest{RegNumber: "21CS001", FeeType: domain.FeeTypeSemester, Status: domain.RequestStatusPending, Amount: 5000}
	require.NoError(t, repo.Create(ctx, first))
	second := &domain.FeeRequest{RegNumber: "21CS001", FeeType: domain.FeeTypeMinor, Status: domain.RequestStatusPending, Amount: 10}
	require.NoError(t, repo.Create(ctx, second))

	earliest, err := repo.GetFirstByRegNumber(ctx, "21CS001")
	require.NoError(t, err)
	assert.Equal(t, first.ID, earliest.ID)

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.TransitionStatus(ctx, first.ID, domain.RequestStatusPending, StatusUpdate{Status: domain.RequestStatusApproved})
			results <- err
		}()
	}
	wg.Wait()
	close(results)
	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrStatusConflict)
	}
	assert.Equal(t, 1, wins)

	_, err = repo.TransitionStatus(ctx, "00000000-0000-0000-0000-000000000000", domain.RequestStatusPending, StatusUpdate{Status: domain.RequestStatusApproved})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pending := domain.RequestStatusPending
	list, err := repo.List(ctx, FeeRequestFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}
