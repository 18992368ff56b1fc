package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samoilovartem/movies-auth/internal/service"
)

func render(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, fail(c, err))
	return rec
}

func TestFailStatusMapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrRoleNotFound, http.StatusNotFound},
		{service.ErrProviderNotFound, http.StatusNotFound},
		{service.ErrLoginExists, http.StatusConflict},
		{service.ErrEmailExists, http.StatusConflict},
		{service.ErrRoleExists, http.StatusConflict},
		{service.ErrRoleAssigned, http.StatusConflict},
		{service.ErrRoleNotAssigned, http.StatusConflict},
		{service.ErrWrongPassword, http.StatusUnauthorized},
		{service.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{service.ErrAccessTokenExpired, http.StatusUnauthorized},
		{service.ErrInsufficientPermissions, http.StatusForbidden},
		{service.ErrRateLimitExceeded, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		se := tc.err.(*service.ServiceError)
		t.Run(se.Code, func(t *testing.T) {
			t.Parallel()
			rec := render(t, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), se.Code)
			assert.Contains(t, rec.Body.String(), se.Message)
		})
	}
}

func TestFailUnknownDomainCode(t *testing.T) {
	t.Parallel()
	rec := render(t, &service.ServiceError{Code: "SOMETHING_ELSE", Message: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFailInfrastructureError(t *testing.T) {
	t.Parallel()
	rec := render(t, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal details never leak into the response body.
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
