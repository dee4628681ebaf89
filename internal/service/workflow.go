package service

import "github.com/feeportal/fee-service/internal/domain"

var allowedTransitions = map[domain.RequestStatus][]domain.RequestStatus{
	domain.RequestStatusPending:  {domain.RequestStatusApproved, domain.RequestStatusRejected},
	domain.RequestStatusApproved: {domain.RequestStatusPaid},
	domain.RequestStatusRejected: {},
	domain.RequestStatusPaid:     {},
}

func isValidTransition(current, next domain.RequestStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func isDecision(status domain.RequestStatus) bool {
	return status == domain.RequestStatusApproved || status == domain.RequestStatusRejected
}
