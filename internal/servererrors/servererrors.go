package servererrors

import "errors"

var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")

	ErrMissingBearerToken = errors.New("missing bearer token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnauthorizedAccess = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden")

	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUsernameAlreadyTaken   = errors.New("username already taken")
	ErrInvalidGoogleToken     = errors.New("invalid google token")

	ErrProductAlreadyExists = errors.New("product already exists")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")

	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("admin not found")
)

// ServerError carries the http status code a handler error should be written
// with, plus optional field-level details for the response body.
type ServerError struct {
	StatusCode int
	Errors     any

	message string
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Errors:     errs,
		message:    message,
	}
}

func (e *ServerError) Error() string {
	return e.message
}
