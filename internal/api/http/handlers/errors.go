package handlers

import (
	"errors"

	"github.com/feeportal/fee-service/internal/domain"
	apperrors "github.com/feeportal/fee-service/pkg/util"
)

// translateError maps domain sentinels to client-facing errors. Anything else
// passes through and is rendered as an internal error.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return apperrors.NewNotFound("request", nil)
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperrors.NewInvalidTransition(err.Error())
	case errors.Is(err, domain.ErrValidation):
		return apperrors.NewValidationError(err.Error(), nil)
	case errors.Is(err, domain.ErrDuplicateEmail):
		return apperrors.NewDuplicateEmail()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.NewInvalidCredentials()
	case errors.Is(err, domain.ErrInvalidRole):
		return apperrors.NewInvalidRole(err.Error())
	}
	return err
}
