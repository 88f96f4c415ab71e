package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeAuth                = "AUTH_ERROR"
	ErrCodeSessionExpired      = "SESSION_EXPIRED"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNetwork             = "NETWORK_ERROR"
	ErrCodeServer              = "SERVER_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeBadState            = "BAD_STATE"
	ErrCodePaymentAbandoned    = "PAYMENT_ABANDONED"
	ErrCodePaymentUnreconciled = "PAYMENT_UNRECONCILED"
)

func AuthError(message string) *AppError {
	return NewAppError(ErrCodeAuth, message, http.StatusUnauthorized)
}

func SessionExpiredError() *AppError {
	return NewAppError(ErrCodeSessionExpired, "Your session has expired. Please login again.", http.StatusUnauthorized)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func NetworkError(message string) *AppError {
	return NewAppError(ErrCodeNetwork, message, 0)
}

func ServerError(message string, statusCode int) *AppError {
	return NewAppError(ErrCodeServer, message, statusCode)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

// BadStateError reports an operation attempted in a state that does not
// permit it, e.g. submitting a checkout that is not collecting input.
func BadStateError(message string) *AppError {
	return NewAppError(ErrCodeBadState, message, http.StatusConflict)
}

func PaymentAbandonedError() *AppError {
	return NewAppError(ErrCodePaymentAbandoned, "Payment was cancelled before completion", http.StatusPaymentRequired)
}

// PaymentUnreconciledError covers the window where an online payment was
// captured but order placement failed. There is no automated compensation;
// the payment reference is carried so support can resolve it manually.
func PaymentUnreconciledError(paymentID string) *AppError {
	return NewAppError(ErrCodePaymentUnreconciled, "Payment succeeded but the order could not be placed. Please contact support.", http.StatusInternalServerError).
		WithDetail(fmt.Sprintf("payment reference: %s", paymentID))
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code == code
	}

	return false
}
