package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses at the layer
// above this core.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
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

// ---- Ledger (LED) ----

func ErrAccountNotFound() *AppError {
	return New("LED_001", "Account not found", http.StatusNotFound)
}

func ErrInvalidMutationAmount() *AppError {
	return New("LED_002", "Invalid mutation amount", http.StatusBadRequest)
}

// ---- Invoices (INV) ----

func ErrInvoiceNotFound() *AppError {
	return New("INV_001", "Invoice not found", http.StatusNotFound)
}

func ErrInvoiceInvalidTransition(from, to string) *AppError {
	return New("INV_002", fmt.Sprintf("Invalid invoice transition from %s to %s", from, to), http.StatusConflict)
}

func ErrInvoicePaymentNotFound() *AppError {
	return New("INV_003", "Invoice payment not found", http.StatusNotFound)
}

// ---- Withdrawals (WDR) ----

func ErrWithdrawalNotFound() *AppError {
	return New("WDR_001", "Withdrawal not found", http.StatusNotFound)
}

// ErrWithdrawalInvalidTransition signals a conditional update that matched
// zero rows: a definitive transition conflict, not a transient error.
func ErrWithdrawalInvalidTransition(detail string) *AppError {
	return New("WDR_002", detail, http.StatusConflict)
}

func ErrRefundApprovalFailed() *AppError {
	return New("WDR_003", "Refund approval failed: withdrawal is not in failed state", http.StatusConflict)
}

func ErrBeneficiaryNotFound() *AppError {
	return New("WDR_004", "Beneficiary not found", http.StatusNotFound)
}

// ---- Settlement (SET) ----

func ErrSettlementInProgress(asset string) *AppError {
	return New("SET_001", fmt.Sprintf("Settlement already in progress for %s", asset), http.StatusConflict)
}

func ErrUnsupportedAsset(asset string) *AppError {
	return New("SET_002", fmt.Sprintf("Unsupported asset: %s", asset), http.StatusBadRequest)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps a database/infrastructure failure. The multi-step
// operation that produced err has already been rolled back.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrLeaseFailure(err error) *AppError {
	return Wrap("SYS_002", "Settlement lease failure", http.StatusServiceUnavailable, err)
}

// Validation returns a bad-request validation error.
func Validation(message string) *AppError {
	return New("LED_002", message, http.StatusBadRequest)
}
