package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBError_ErrorFormat(t *testing.T) {
	err := NewDBError(ErrCodeConnUnavailable, "no connection available", nil)
	assert.Equal(t, "resource_connection_unavailable: no connection available", err.Error())
}

func TestDBError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewDBError(ErrCodeBackendQuery, "statement execution failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestCodeOf(t *testing.T) {
	err := NewDBError(ErrCodeTxRollback, "rollback failed", nil)
	assert.Equal(t, ErrCodeTxRollback, CodeOf(err))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, ErrCodeTxRollback, CodeOf(wrapped))

	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestErrorCode_IsUsage(t *testing.T) {
	assert.True(t, ErrCodeUsageNoColumn.IsUsage())
	assert.True(t, ErrCodeUsageUnsupported.IsUsage())
	assert.False(t, ErrCodeConnUnavailable.IsUsage())
	assert.False(t, ErrCodeBackendQuery.IsUsage())
}

func TestDBError_AsTarget(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewDBError(ErrCodeBackendScan, "decode failed", nil))

	var dbErr *DBError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, ErrCodeBackendScan, dbErr.Code)
}
