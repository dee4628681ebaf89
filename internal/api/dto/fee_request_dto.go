package dto

import (
	"time"

	"github.com/feeportal/fee-service/internal/domain"
)

// SubmitFeeRequest payload for POST /request-fee. A status sent by the
// client is not bound.
type SubmitFeeRequest struct {
	StudentName string  `json:"studentName" form:"studentName"`
	RegNumber   string  `json:"regNumber" form:"regNumber"`
	Year        string  `json:"year" form:"year"`
	Branch      string  `json:"branch" form:"branch"`
	Section     string  `json:"section" form:"section"`
	FeeType     string  `json:"feeType" form:"feeType"`
	Amount      float64 `json:"amount" form:"amount"`
	CrtFee      float64 `json:"crtFee" form:"crtFee"`
	Attendance  string  `json:"attendance" form:"attendance"`
}

// DecideRequest payload for POST /faculty/update.
type DecideRequest struct {
	ID      string `json:"id" form:"id"`
	Status  string `json:"status" form:"status"`
	Reason  string `json:"reason" form:"reason"`
	Faculty string `json:"faculty" form:"faculty"`
}

// PayRequest payload for POST /pay-fee.
type PayRequest struct {
	RequestID string `json:"requestId" form:"requestId"`
}

// SubmitFeeResponse acknowledges a stored request.
type SubmitFeeResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// FeeRequestResponse is the wire form of a fee request.
type FeeRequestResponse struct {
	ID          string    `json:"_id"`
	StudentName string    `json:"studentName"`
	RegNumber   string    `json:"regNumber"`
	Year        string    `json:"year"`
	Branch      string    `json:"branch"`
	Section     string    `json:"section"`
	FeeType     string    `json:"feeType"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason"`
	Faculty     string    `json:"faculty"`
	Amount      float64   `json:"amount"`
	CrtFee      float64   `json:"crtFee"`
	Attendance  string    `json:"attendance"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StatusNotFoundResponse is the soft-fail body of GET /status/:regNumber.
type StatusNotFoundResponse struct {
	Status string `json:"status"`
}

// NewFeeRequestResponse maps a domain request to its wire form.
func NewFeeRequestResponse(r *domain.FeeRequest) FeeRequestResponse {
	return FeeRequestResponse{
		ID:          r.ID,
		StudentName: r.StudentName,
		RegNumber:   r.RegNumber,
		Year:        r.Year,
		Branch:      r.Branch,
		Section:     r.Section,
		FeeType:     string(r.FeeType),
		Status:      string(r.Status),
		Reason:      r.Reason,
		Faculty:     r.Faculty,
		Amount:      r.Amount,
		CrtFee:      r.CrtFee,
		Attendance:  r.Attendance,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// NewFeeRequestList maps a slice, never returning nil so the body is [] when empty.
func NewFeeRequestList(requests []domain.FeeRequest) []FeeRequestResponse {
	out := make([]FeeRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, NewFeeRequestResponse(&requests[i]))
	}
	return out
}
