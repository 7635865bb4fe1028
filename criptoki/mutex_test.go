//go:build cgo && !windows

package criptoki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niclabs/ckabi/ck"
)

func withFuncs(t *testing.T, funcs ck.MutexFuncs) {
	t.Helper()
	previous := registered()
	require.NoError(t, RegisterMutexFuncs(funcs))
	t.Cleanup(func() {
		require.NoError(t, RegisterMutexFuncs(previous))
	})
}

func TestRegisterMutexFuncs_Partial(t *testing.T) {
	err := RegisterMutexFuncs(ck.MutexFuncs{Lock: func(ck.MutexHandle) ck.RV { return ck.CKR_OK }})
	assert.ErrorIs(t, err, ck.ErrPartialMutexFuncs)
}

func TestMutexArgs(t *testing.T) {
	args := MutexArgs(ck.CKF_OS_LOCKING_OK)
	require.NoError(t, args.Validate())
	assert.True(t, args.UsesCallbacks())
	assert.Equal(t, ck.CKF_OS_LOCKING_OK, args.Flags)
	assert.Zero(t, args.Reserved())
	assert.Equal(t, args, MutexArgs(ck.CKF_OS_LOCKING_OK), "trampoline addresses are stable")

	none := NoMutexArgs(ck.CKF_OS_LOCKING_OK)
	require.NoError(t, none.Validate())
	assert.False(t, none.UsesCallbacks())
	assert.Contains(t, none.String(), "flags=0x00000002{CKF_OS_LOCKING_OK}")
}

func TestTrampolines_BadArguments(t *testing.T) {
	table := ck.NewMutexTable()
	withFuncs(t, table.Funcs())
	assert.Equal(t, ck.CKR_ARGUMENTS_BAD, ck.RV(ckGoCreateMutex(nil)))
	assert.Equal(t, ck.CKR_MUTEX_BAD, ck.RV(ckGoLockMutex(nil)))
	assert.Equal(t, ck.CKR_MUTEX_BAD, ck.RV(ckGoUnlockMutex(nil)))
	assert.Equal(t, ck.CKR_MUTEX_BAD, ck.RV(ckGoDestroyMutex(nil)))
}

func TestSelfTest_MutexTable(t *testing.T) {
	table := ck.NewMutexTable()
	withFuncs(t, table.Funcs())

	const threads, iterations = 8, 1000
	counter, err := SelfTest(MutexArgs(ck.CKF_OS_LOCKING_OK), threads, iterations)
	require.NoError(t, err)
	assert.Equal(t, int64(threads*iterations), counter)
	assert.Equal(t, 0, table.Len(), "the mutex was destroyed")
}

func TestSelfTest_Unregistered(t *testing.T) {
	withFuncs(t, ck.MutexFuncs{})
	_, err := SelfTest(MutexArgs(0), 2, 10)
	require.Error(t, err)
	assert.Equal(t, ck.CKR_FUNCTION_FAILED, ck.ErrorToRV(err))
}

func TestSelfTest_CallbackPanics(t *testing.T) {
	table := ck.NewMutexTable()
	funcs := table.Funcs()
	funcs.Lock = func(ck.MutexHandle) ck.RV { panic("lock exploded") }
	withFuncs(t, funcs)

	counter, err := SelfTest(MutexArgs(0), 4, 10)
	require.Error(t, err)
	assert.Equal(t, ck.CKR_GENERAL_ERROR, ck.ErrorToRV(err))
	assert.Zero(t, counter)
	assert.Equal(t, 0, table.Len())
}

func TestSelfTest_Arguments(t *testing.T) {
	_, err := SelfTest(NoMutexArgs(0), 1, 1)
	assert.Equal(t, ck.CKR_ARGUMENTS_BAD, ck.ErrorToRV(err))
	_, err = SelfTest(MutexArgs(0), 0, 1)
	assert.Equal(t, ck.CKR_ARGUMENTS_BAD, ck.ErrorToRV(err))
	_, err = SelfTest(MutexArgs(0), MaxSelfTestThreads+1, 1)
	assert.Equal(t, ck.CKR_ARGUMENTS_BAD, ck.ErrorToRV(err))
}
