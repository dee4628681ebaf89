package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"student", "faculty", "hod", " HOD "} {
		role, err := ParseRole(raw)
		require.NoError(t, err, raw)
		assert.True(t, role.Valid())
	}

	_, err := ParseRole("admin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRole))

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLandingPage(t *testing.T) {
	assert.Equal(t, LandingMain, RoleStudent.LandingPage())
	assert.Equal(t, LandingFaculty, RoleFaculty.LandingPage())
	assert.Equal(t, LandingHOD, RoleHOD.LandingPage())
	assert.Equal(t, LandingMain, Role("registrar").LandingPage())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a.b@uni.edu", NormalizeEmail("  A.B@Uni.EDU "))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, RequestStatusPending.Terminal())
	assert.False(t, RequestStatusApproved.Terminal())
	assert.True(t, RequestStatusRejected.Terminal())
	assert.True(t, RequestStatusPaid.Terminal())
}
