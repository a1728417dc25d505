// Package types defines the shared error taxonomy for the adapter. Every
// error surfaced to the ORM core is a *DBError carrying a typed code, so
// callers can branch on the failure class without string matching.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is a typed string for categorizing adapter errors.
type ErrorCode string

// Error code constants. All adapter packages MUST use these constants
// instead of hardcoded strings.
const (
	// Usage errors: the caller misused the API. Raised synchronously,
	// never silently degraded.
	ErrCodeUsageNoColumn    ErrorCode = "usage_modifier_before_column"
	ErrCodeUsageUnsupported ErrorCode = "usage_unsupported_operation"

	// Resource errors: the connection pool could not supply a connection.
	// Surfaced before any SQL is attempted.
	ErrCodeConnUnavailable ErrorCode = "resource_connection_unavailable"

	// Backend errors: the driver reported a failure executing SQL. The
	// driver error is wrapped, never swallowed.
	ErrCodeBackendQuery ErrorCode = "backend_query_failed"
	ErrCodeBackendScan  ErrorCode = "backend_row_decode_failed"

	// Transactional errors: rollback itself failed, superseding the
	// original work-function failure.
	ErrCodeTxBegin    ErrorCode = "tx_begin_failed"
	ErrCodeTxCommit   ErrorCode = "tx_commit_failed"
	ErrCodeTxRollback ErrorCode = "tx_rollback_failed"
)

// IsUsage reports whether the code belongs to the usage-error class.
func (c ErrorCode) IsUsage() bool {
	return strings.HasPrefix(string(c), "usage_")
}

// DBError is the standard error type used throughout the adapter. It wraps
// the underlying driver error (when there is one) for errors.Is/errors.As
// support.
type DBError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DBError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *DBError) Unwrap() error {
	return e.Err
}

// NewDBError creates a new DBError with the given code, message, and
// optional underlying error. This is the standard constructor for adapter
// errors.
func NewDBError(code ErrorCode, message string, err error) *DBError {
	return &DBError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf extracts the ErrorCode from err if it is (or wraps) a *DBError.
// Returns the empty code for foreign errors.
func CodeOf(err error) ErrorCode {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Code
	}
	return ""
}
