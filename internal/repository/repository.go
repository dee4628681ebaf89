package repository

import (
	"context"
	"errors"

	"github.com/feeportal/fee-service/internal/domain"
)

// ErrStatusConflict is returned by TransitionStatus when the stored status no
// longer matches the expected one.
var ErrStatusConflict = errors.New("fee request status changed concurrently")

// AccountRepository defines persistence access for accounts. Lookups return
// domain.ErrNotFound when nothing matches.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// FeeRequestFilter narrows List. A nil Status lists everything.
type FeeRequestFilter struct {
	Status *domain.RequestStatus
}

// StatusUpdate describes a transition. Nil fields are left untouched.
type StatusUpdate struct {
	Status  domain.RequestStatus
	Reason  *string
	Faculty *string
}

// FeeRequestRepository encapsulates fee request persistence. Listings are in
// creation order.
type FeeRequestRepository interface {
	Create(ctx context.Context, request *domain.FeeRequest) error
	GetByID(ctx context.Context, id string) (*domain.FeeRequest, error)
	GetFirstByRegNumber(ctx context.Context, regNumber string) (*domain.FeeRequest, error)
	List(ctx context.Context, filter FeeRequestFilter) ([]domain.FeeRequest, error)
	// TransitionStatus applies update only while the stored status equals from.
	// It returns domain.ErrNotFound for unknown ids and ErrStatusConflict when
	// the status differs.
	TransitionStatus(ctx context.Context, id string, from domain.RequestStatus, update StatusUpdate) (*domain.FeeRequest, error)
}
