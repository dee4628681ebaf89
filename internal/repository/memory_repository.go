package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feeportal/fee-service/internal/domain"
)

// MemoryAccountRepository keeps accounts in process memory. It backs the
// "memory" store driver and tests.
type MemoryAccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.Account
	byEmail map[string]string
}

// NewMemoryAccountRepository builds an empty store.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		byID:    make(map[string]domain.Account),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryAccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now().UTC()
	r.byID[account.ID] = *account
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &account, nil
}

func (r *MemoryAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	account := r.byID[id]
	return &account, nil
}

// Count returns the number of stored accounts.
func (r *MemoryAccountRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// MemoryFeeRequestRepository keeps fee requests in process memory.
type MemoryFeeRequestRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.FeeRequest
}

// NewMemoryFeeRequestRepository builds an empty store.
func NewMemoryFeeRequestRepository() *MemoryFeeRequestRepository {
	return &MemoryFeeRequestRepository{byID: make(map[string]domain.FeeRequest)}
}

func (r *MemoryFeeRequestRepository) Create(_ context.Context, request *domain.FeeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	request.ID = uuid.NewString()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.byID[request.ID] = *request
	r.order = append(r.order, request.ID)
	return nil
}

func (r *MemoryFeeRequestRepository) GetByID(_ context.Context, id string) (*domain.FeeRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &request, nil
}

func (r *MemoryFeeRequestRepository) GetFirstByRegNumber(_ context.Context, regNumber string) (*domain.FeeRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if request := r.byID[id]; request.RegNumber == regNumber {
			return &request, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryFeeRequestRepository) List(_ context.Context, filter FeeRequestFilter) ([]domain.FeeRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.FeeRequest, 0, len(r.order))
	for _, id := range r.order {
		request := r.byID[id]
		if filter.Status != nil && request.Status != *filter.Status {
			continue
		}
		result = append(result, request)
	}
	return result, nil
}

func (r *MemoryFeeRequestRepository) TransitionStatus(_ context.Context, id string, from domain.RequestStatus, update StatusUpdate) (*domain.FeeRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if request.Status != from {
		return nil, ErrStatusConflict
	}
	request.Status = update.Status
	if update.Reason != nil {
		request.Reason = *update.Reason
	}
	if update.Faculty != nil {
		request.Faculty = *update.Faculty
	}
	request.UpdatedAt = time.Now().UTC()
	r.byID[id] = request
	return &request, nil
}
