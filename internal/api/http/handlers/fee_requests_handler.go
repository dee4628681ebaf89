package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/feeportal/fee-service/internal/api/dto"
	"github.com/feeportal/fee-service/internal/auth"
	"github.com/feeportal/fee-service/internal/domain"
	"github.com/feeportal/fee-service/internal/service"
	apperrors "github.com/feeportal/fee-service/pkg/util"
)

const statusNotFound = "Not Found"

// FeeRequestsHandler manages the fee request workflow endpoints.
type FeeRequestsHandler struct {
	service *service.FeeRequestService
}

// NewFeeRequestsHandler constructs handler.
func NewFeeRequestsHandler(feeService *service.FeeRequestService) *FeeRequestsHandler {
	return &FeeRequestsHandler{service: feeService}
}

// Submit POST /request-fee.
func (h *FeeRequestsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	created, err := h.service.Submit(c.UserContext(), callerAccount(c), service.SubmitInput{
		StudentName: req.StudentName,
		RegNumber:   req.RegNumber,
		Year:        req.Year,
		Branch:      req.Branch,
		Section:     req.Section,
		FeeType:     req.FeeType,
		Amount:      req.Amount,
		CrtFee:      req.CrtFee,
		Attendance:  req.Attendance,
	})
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.SubmitFeeResponse{
		Message:   "Fee request submitted successfully!",
		RequestID: created.ID,
	})
}

// ListPending GET /requests.
func (h *FeeRequestsHandler) ListPending(c *fiber.Ctx) error {
	requests, err := h.service.ListPending(c.UserContext())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewFeeRequestList(requests))
}

// ListAll GET /all-requests.
func (h *FeeRequestsHandler) ListAll(c *fiber.Ctx) error {
	requests, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewFeeRequestList(requests))
}

// Decide POST /faculty/update.
func (h *FeeRequestsHandler) Decide(c *fiber.Ctx) error {
	var req dto.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ID) == "" {
		return apperrors.NewValidationError("id required", nil)
	}

	_, err := h.service.Decide(c.UserContext(), callerAccount(c), service.DecideInput{
		ID:      req.ID,
		Status:  req.Status,
		Reason:  req.Reason,
		Faculty: req.Faculty,
	})
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Request updated successfully!"})
}

// GetByID GET /request/:id.
func (h *FeeRequestsHandler) GetByID(c *fiber.Ctx) error {
	request, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewFeeRequestResponse(request))
}

// StatusByRegNumber GET /status/:regNumber. An unknown regNumber answers 200
// with {"status":"Not Found"}.
func (h *FeeRequestsHandler) StatusByRegNumber(c *fiber.Ctx) error {
	request, found, err := h.service.GetByRegNumber(c.UserContext(), c.Params("regNumber"))
	if err != nil {
		return translateError(err)
	}
	if !found {
		return c.JSON(dto.StatusNotFoundResponse{Status: statusNotFound})
	}
	return c.JSON(dto.NewFeeRequestResponse(request))
}

// Pay POST /pay-fee.
func (h *FeeRequestsHandler) Pay(c *fiber.Ctx) error {
	var req dto.PayRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.RequestID) == "" {
		return apperrors.NewValidationError("requestId required", nil)
	}

	if _, err := h.service.Pay(c.UserContext(), callerAccount(c), req.RequestID); err != nil {
		return translateError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Payment successful!"})
}

func callerAccount(c *fiber.Ctx) *domain.Account {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principal.Account
}
