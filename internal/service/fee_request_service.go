package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feeportal/fee-service/internal/domain"
	"github.com/feeportal/fee-service/internal/events"
	"github.com/feeportal/fee-service/internal/observability"
	"github.com/feeportal/fee-service/internal/repository"
)

// FeeRequestService runs the fee request workflow:
// Pending -> Approved | Rejected, Approved -> Paid.
type FeeRequestService struct {
	requests   repository.FeeRequestRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// FeeRequestDependencies bundles collaborators for the workflow.
type FeeRequestDependencies struct {
	FeeRequestRepo repository.FeeRequestRepository
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
}

// SubmitInput describes a new request. There is deliberately no status field.
type SubmitInput struct {
	StudentName string
	RegNumber   string
	Year        string
	Branch      string
	Section     string
	FeeType     string
	Amount      float64
	CrtFee      float64
	Attendance  string
}

// DecideInput describes a faculty decision.
type DecideInput struct {
	ID      string
	Status  string
	Reason  string
	Faculty string
}

// NewFeeRequestService constructs the service.
func NewFeeRequestService(deps FeeRequestDependencies) *FeeRequestService {
	return &FeeRequestService{
		requests:   deps.FeeRequestRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// Submit stores a new request, always in Pending.
func (s *FeeRequestService) Submit(ctx context.Context, actor *domain.Account, input SubmitInput) (*domain.FeeRequest, error) {
	feeType := domain.FeeType(strings.ToLower(strings.TrimSpace(input.FeeType)))
	if !feeType.Valid() {
		return nil, fmt.Errorf("%w: feeType must be semester or minor", domain.ErrValidation)
	}
	if strings.TrimSpace(input.RegNumber) == "" {
		return nil, fmt.Errorf("%w: regNumber is required", domain.ErrValidation)
	}
	if input.Amount < 0 || input.CrtFee < 0 {
		return nil, fmt.Errorf("%w: amounts cannot be negative", domain.ErrValidation)
	}

	request := &domain.FeeRequest{
		StudentName: strings.TrimSpace(input.StudentName),
		RegNumber:   strings.TrimSpace(input.RegNumber),
		Year:        strings.TrimSpace(input.Year),
		Branch:      strings.TrimSpace(input.Branch),
		Section:     strings.TrimSpace(input.Section),
		FeeType:     feeType,
		Status:      domain.RequestStatusPending,
		Amount:      input.Amount,
		CrtFee:      input.CrtFee,
		Attendance:  input.Attendance,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.metrics.RecordTransition("", string(request.Status))
	s.publishEvent(ctx, events.Event{
		Type:      events.EventFeeRequestSubmitted,
		RequestID: request.ID,
		Actor:     actorOf(actor),
		Payload: events.SubmittedPayload{
			RegNumber: request.RegNumber,
			FeeType:   request.FeeType,
			Amount:    request.Amount,
		},
	})
	return request, nil
}

// ListPending returns requests awaiting a faculty decision.
func (s *FeeRequestService) ListPending(ctx context.Context) ([]domain.FeeRequest, error) {
	status := domain.RequestStatusPending
	return s.requests.List(ctx, repository.FeeRequestFilter{Status: &status})
}

// ListAll returns every request regardless of status.
func (s *FeeRequestService) ListAll(ctx context.Context) ([]domain.FeeRequest, error) {
	return s.requests.List(ctx, repository.FeeRequestFilter{})
}

// GetByID fetches a single request.
func (s *FeeRequestService) GetByID(ctx context.Context, id string) (*domain.FeeRequest, error) {
	return s.requests.GetByID(ctx, strings.TrimSpace(id))
}

// GetByRegNumber returns the first request filed under regNumber. found is
// false, with a nil error, when there is none.
func (s *FeeRequestService) GetByRegNumber(ctx context.Context, regNumber string) (request *domain.FeeRequest, found bool, err error) {
	request, err = s.requests.GetFirstByRegNumber(ctx, strings.TrimSpace(regNumber))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return request, true, nil
}

// Decide records a faculty approval or rejection of a Pending request.
func (s *FeeRequestService) Decide(ctx context.Context, actor *domain.Account, input DecideInput) (*domain.FeeRequest, error) {
	target := domain.RequestStatus(strings.TrimSpace(input.Status))
	if !isDecision(target) {
		return nil, fmt.Errorf("%w: status must be Approved or Rejected", domain.ErrValidation)
	}

	faculty := strings.TrimSpace(input.Faculty)
	if faculty == "" && actor != nil {
		faculty = actor.Username
	}
	reason := input.Reason

	return s.transition(ctx, actor, strings.TrimSpace(input.ID), target, repository.StatusUpdate{
		Status:  target,
		Reason:  &reason,
		Faculty: &faculty,
	}, events.EventFeeRequestDecided)
}

// Pay marks an Approved request as Paid. No money moves; this is a status flip.
func (s *FeeRequestService) Pay(ctx context.Context, actor *domain.Account, id string) (*domain.FeeRequest, error) {
	return s.transition(ctx, actor, strings.TrimSpace(id), domain.RequestStatusPaid, repository.StatusUpdate{
		Status: domain.RequestStatusPaid,
	}, events.EventFeeRequestPaid)
}

func (s *FeeRequestService) transition(ctx context.Context, actor *domain.Account, id string, target domain.RequestStatus, update repository.StatusUpdate, eventType events.EventType) (*domain.FeeRequest, error) {
	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, fmt.Errorf("%w: request is already %s", domain.ErrInvalidTransition, current.Status)
	}
	if !isValidTransition(current.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, target)
	}

	updated, err := s.requests.TransitionStatus(ctx, current.ID, current.Status, update)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: request changed while updating", domain.ErrInvalidTransition)
		}
		return nil, err
	}

	s.metrics.RecordTransition(string(current.Status), string(updated.Status))
	s.publishEvent(ctx, events.Event{
		Type:      eventType,
		RequestID: updated.ID,
		Actor:     actorOf(actor),
		Payload: events.StatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
			Reason:    updated.Reason,
			Faculty:   updated.Faculty,
		},
	})
	return updated, nil
}

func (s *FeeRequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(account *domain.Account) events.Actor {
	if account == nil {
		return events.Actor{}
	}
	return events.Actor{AccountID: account.ID, Role: account.Role}
}
