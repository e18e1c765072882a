package errors

import "fmt"

type ErrorCode int

const (
	ErrInvalidInput       ErrorCode = 4000
	ErrInvalidRequestData ErrorCode = 4001

	ErrUnauthorized               ErrorCode = 4010
	ErrTokenExpired               ErrorCode = 4011
	ErrInvalidTokenFormat         ErrorCode = 4012
	ErrMissingAuthorizationHeader ErrorCode = 4013

	ErrForbidden     ErrorCode = 4030
	ErrNotFound      ErrorCode = 4040
	ErrAlreadyExists ErrorCode = 4090

	ErrInternalServer ErrorCode = 5000
	ErrCreateFailed   ErrorCode = 5001
	ErrGetFailed      ErrorCode = 5002
	ErrUpdateFailed   ErrorCode = 5003
	ErrDeleteFailed   ErrorCode = 5004
	ErrRemoteFailure  ErrorCode = 5020
)

// Kind is the coarse failure category surfaced to callers.
type Kind string

const (
	KindUnauthenticated   Kind = "unauthenticated"
	KindNotFound          Kind = "not_found"
	KindValidationFailure Kind = "validation_failure"
	KindRemoteFailure     Kind = "remote_failure"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Kind() Kind {
	switch e.Code {
	case ErrUnauthorized, ErrTokenExpired, ErrInvalidTokenFormat, ErrMissingAuthorizationHeader:
		return KindUnauthenticated
	case ErrNotFound, ErrForbidden:
		// callers never learn that a row exists under another owner
		return KindNotFound
	case ErrInvalidInput, ErrInvalidRequestData, ErrAlreadyExists:
		return KindValidationFailure
	default:
		return KindRemoteFailure
	}
}

func Unauthenticated() *AppError {
	return NewAppError(ErrUnauthorized, "not signed in", nil)
}

func NotFound(what string) *AppError {
	return NewAppError(ErrNotFound, what+" not found", nil)
}

func Validation(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, nil)
}

func Remote(message string, err error) *AppError {
	return NewAppError(ErrRemoteFailure, message, err)
}
