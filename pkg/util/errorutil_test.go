package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	orig := NewDuplicateEmail()
	wrapped := fmt.Errorf("signup: %w", orig)

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, CodeDuplicateEmail, de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
}

func TestToDomainErrorHidesUnknownErrors(t *testing.T) {
	de := ToDomainError(errors.New("connection refused to 10.0.0.4"))
	require.NotNil(t, de)
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, "internal server error", de.Message)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}

func TestToDomainErrorFiberErrors(t *testing.T) {
	de := ToDomainError(fiber.ErrNotFound)
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)

	de = ToDomainError(fiber.NewError(http.StatusTooManyRequests, "slow down"))
	assert.Equal(t, "TOO_MANY_REQUESTS", de.Code)
	assert.Equal(t, "slow down", de.Message)

	de = ToDomainError(fiber.ErrBadGateway)
	assert.Equal(t, CodeInternal, de.Code)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestNewNotFoundMessage(t *testing.T) {
	err := NewNotFound("request", nil)
	assert.Equal(t, "request not found", err.Error())
}
