package domain

import "time"

// FeeType enumerates the fees a request can target.
type FeeType string

const (
	FeeTypeSemester FeeType = "semester"
	FeeTypeMinor    FeeType = "minor"
)

// Valid reports whether t is a known fee type.
func (t FeeType) Valid() bool {
	return t == FeeTypeSemester || t == FeeTypeMinor
}

// RequestStatus enumerates lifecycle states for fee requests.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
	RequestStatusPaid     RequestStatus = "Paid"
)

// Terminal reports whether no further transition leaves s.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusRejected || s == RequestStatusPaid
}

// FeeRequest is a student's fee-waiver submission. Amount, CrtFee and the
// identifying fields are never changed after creation.
type FeeRequest struct {
	ID          string
	StudentName string
	RegNumber   string
	Year        string
	Branch      string
	Section     string
	FeeType     FeeType
	Status      RequestStatus
	Reason      string
	Faculty     string
	Amount      float64
	CrtFee      float64
	Attendance  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
