package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/auth"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, validateEmail("a@x.com"))
	assert.True(t, validateEmail("first.last+tag@example.org"))
	assert.False(t, validateEmail(""))
	assert.False(t, validateEmail("not-an-email"))
	assert.False(t, validateEmail("missing@"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validatePassword("longenough"))
	assert.Error(t, validatePassword(""))
	assert.Error(t, validatePassword("short"))
}

func TestWriteWorkflowErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{auth.ErrInvalidToken, http.StatusForbidden},
		{auth.ErrTokenExpired, http.StatusForbidden},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrUnauthorized, http.StatusUnauthorized},
		{auth.ErrEmailTaken, http.StatusConflict},
		{fmt.Errorf("%w: smtp down", auth.ErrDelivery), http.StatusBadGateway},
		{errors.New("pool exhausted"), http.StatusInternalServerError},
		{fmt.Errorf("find token: %w", errors.New("timeout")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
		writeWorkflowError(rr, req, tt.err)
		assert.Equal(t, tt.status, rr.Code, "err=%v", tt.err)
	}
}

func TestWriteWorkflowErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sign-in", nil)

	writeWorkflowError(rr, req, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
}

func TestParseTimeParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users?created_at[gte]=2024-01-02T03:04:05Z", nil)

	got, err := parseTimeParam(req, "created_at[gte]")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())

	absent, err := parseTimeParam(req, "created_at[lte]")
	require.NoError(t, err)
	assert.Nil(t, absent)

	req = httptest.NewRequest(http.MethodGet, "/api/users?created_at[gte]=yesterday", nil)
	_, err = parseTimeParam(req, "created_at[gte]")
	assert.Error(t, err)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s, _, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/api/users/user-1", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
