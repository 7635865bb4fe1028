package ck

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorToRV(t *testing.T) {
	assert.Equal(t, CKR_OK, ErrorToRV(nil))
	assert.Equal(t, CKR_MUTEX_BAD, ErrorToRV(NewError("Lock", "unknown handle", CKR_MUTEX_BAD)))
	wrapped := fmt.Errorf("initialize: %w", NewError("C_Initialize", "bad", CKR_ARGUMENTS_BAD))
	assert.Equal(t, CKR_ARGUMENTS_BAD, ErrorToRV(wrapped))
	assert.Equal(t, CKR_GENERAL_ERROR, ErrorToRV(errors.New("boom")))
}

func TestError_Error(t *testing.T) {
	err := NewError("Module.GetInfo", "library failed", CKR_FUNCTION_FAILED)
	assert.Equal(t, "Module.GetInfo: library failed [CKR_FUNCTION_FAILED]", err.Error())
}
