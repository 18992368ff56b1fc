package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samoilovartem/movies-auth/internal/service"
)

// statusByCode maps the domain error taxonomy to HTTP statuses.  Codes
// absent from the table fall back to 400.
var statusByCode = map[string]int{
	"USER_NOT_FOUND":           http.StatusNotFound,
	"ROLE_NOT_FOUND":           http.StatusNotFound,
	"PROVIDER_NOT_FOUND":       http.StatusNotFound,
	"LOGIN_EXISTS":             http.StatusConflict,
	"EMAIL_EXISTS":             http.StatusConflict,
	"ROLE_EXISTS":              http.StatusConflict,
	"ROLE_ALREADY_ASSIGNED":    http.StatusConflict,
	"ROLE_NOT_ASSIGNED":        http.StatusConflict,
	"WRONG_PASSWORD":           http.StatusUnauthorized,
	"INVALID_REFRESH_TOKEN":    http.StatusUnauthorized,
	"ACCESS_TOKEN_EXPIRED":     http.StatusUnauthorized,
	"INSUFFICIENT_PERMISSIONS": http.StatusForbidden,
	"RATE_LIMIT_EXCEEDED":      http.StatusTooManyRequests,
}

// fail renders any error.  Domain failures keep their {error_code,
// message} body and mapped status; everything else is an infrastructure
// fault, logged and reported as a bare 500.
func fail(c echo.Context, err error) error {
	var se *service.ServiceError
	if errors.As(err, &se) {
		status, ok := statusByCode[se.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		return c.JSON(status, se)
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
