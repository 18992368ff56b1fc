// Package service implements the session lifecycle engine and the role
// administration built on top of the credential store, the token codec
// and the ephemeral access-token registry.
package service

// ServiceError is a domain failure carrying a stable machine-readable
// code and a human-readable message.  Handlers translate the code into
// an HTTP status; infrastructure failures are never wrapped in a
// ServiceError and surface as 5xx instead.
type ServiceError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *ServiceError) Error() string { return e.Code + ": " + e.Message }

// The full domain error taxonomy.  Every failing service operation
// returns one of these values.
var (
	ErrUserNotFound            = &ServiceError{Code: "USER_NOT_FOUND", Message: "Unknown user UUID"}
	ErrLoginExists             = &ServiceError{Code: "LOGIN_EXISTS", Message: "This username is already taken"}
	ErrEmailExists             = &ServiceError{Code: "EMAIL_EXISTS", Message: "This email address is already used"}
	ErrWrongPassword           = &ServiceError{Code: "WRONG_PASSWORD", Message: "The password is incorrect"}
	ErrInvalidRefreshToken     = &ServiceError{Code: "INVALID_REFRESH_TOKEN", Message: "This refresh token is invalid"}
	ErrAccessTokenExpired      = &ServiceError{Code: "ACCESS_TOKEN_EXPIRED", Message: "Access token has expired"}
	ErrInsufficientPermissions = &ServiceError{Code: "INSUFFICIENT_PERMISSIONS", Message: "Not enough permissions for this operation"}
	ErrRateLimitExceeded       = &ServiceError{Code: "RATE_LIMIT_EXCEEDED", Message: "Too many requests"}
	ErrRoleNotFound            = &ServiceError{Code: "ROLE_NOT_FOUND", Message: "Unknown role UUID"}
	ErrRoleExists              = &ServiceError{Code: "ROLE_EXISTS", Message: "Role already exists"}
	ErrRoleAssigned            = &ServiceError{Code: "ROLE_ALREADY_ASSIGNED", Message: "User already has this role"}
	ErrRoleNotAssigned         = &ServiceError{Code: "ROLE_NOT_ASSIGNED", Message: "User does not have this role"}
	ErrProviderNotFound        = &ServiceError{Code: "PROVIDER_NOT_FOUND", Message: "Social provider not found"}
)
