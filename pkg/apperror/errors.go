package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string          `json:"error_code"`
	Message    string          `json:"message"`
	HTTPStatus int             `json:"-"`
	Details    json.RawMessage `json:"details,omitempty"` // Upstream payload surfaced verbatim (e.g. ledger error)
	Err        error           `json:"-"`                 // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Error codes.
const (
	CodeValidation           = "VAL_001"
	CodeInvalidAddress       = "ADDR_001"
	CodePriceFeedUnavailable = "FEED_001"
	CodeLedgerUnreachable    = "LEDGER_001"
	CodeInvalidAmount        = "CONV_001"
	CodeTransactionFailed    = "TX_001"
	CodeHostedProvider       = "HOSTED_001"
	CodeNotFound             = "HOSTED_002"
	CodeRateLimitExceeded    = "RATE_001"
	CodeInternal             = "SYS_001"
)

// ---- Request validation (VAL / ADDR) ----

// Validation returns a user-correctable request error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrInvalidAddress(field string, err error) *AppError {
	return Wrap(CodeInvalidAddress, fmt.Sprintf("Invalid %s address", field), http.StatusBadRequest, err)
}

// ---- Upstream dependencies (FEED / LEDGER / HOSTED) ----

func ErrPriceFeedUnavailable(err error) *AppError {
	return Wrap(CodePriceFeedUnavailable, "Price feed unavailable", http.StatusInternalServerError, err)
}

func ErrLedgerUnreachable(err error) *AppError {
	return Wrap(CodeLedgerUnreachable, "Ledger unreachable", http.StatusInternalServerError, err)
}

// ErrHostedProvider surfaces the provider's own message to the client.
func ErrHostedProvider(err error) *AppError {
	msg := "Hosted payment provider error"
	if err != nil {
		msg = err.Error()
	}
	return Wrap(CodeHostedProvider, msg, http.StatusInternalServerError, err)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Conversion & settlement (CONV / TX) ----

// ErrInvalidAmount marks a conversion that produced a non-positive or
// out-of-range quantity. It is a defect, never clamped.
func ErrInvalidAmount(reason string) *AppError {
	return New(CodeInvalidAmount, "Invalid amount: "+reason, http.StatusInternalServerError)
}

// ErrTransactionFailed carries the ledger's error payload verbatim.
func ErrTransactionFailed(signature string, ledgerErr json.RawMessage) *AppError {
	e := New(CodeTransactionFailed, fmt.Sprintf("Transaction %s failed", signature), http.StatusBadGateway)
	e.Details = ledgerErr
	return e
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
