package ck

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeArgs_Layout(t *testing.T) {
	var args InitializeArgs
	assert.Equal(t, 6*PtrSize, unsafe.Sizeof(args))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(args.CreateMutex))
	assert.Equal(t, PtrSize, unsafe.Offsetof(args.DestroyMutex))
	assert.Equal(t, 2*PtrSize, unsafe.Offsetof(args.LockMutex))
	assert.Equal(t, 3*PtrSize, unsafe.Offsetof(args.UnlockMutex))
	assert.Equal(t, 4*PtrSize, unsafe.Offsetof(args.Flags))
	assert.Equal(t, 5*PtrSize, InitializeArgsReservedOffset)
}

func TestNewInitializeArgs_NoCallbacks(t *testing.T) {
	args := NewInitializeArgs(0, 0, 0, 0, CKF_OS_LOCKING_OK)
	require.NoError(t, args.Validate())
	assert.False(t, args.UsesCallbacks())
	assert.Equal(t, CKF_OS_LOCKING_OK, args.Flags)
	assert.Zero(t, args.Reserved())
	assert.Equal(t, "create=NULL destroy=NULL lock=NULL unlock=NULL flags=0x00000002{CKF_OS_LOCKING_OK}", args.String())
}

func TestNewInitializeArgs_Callbacks(t *testing.T) {
	args := NewInitializeArgs(0x1000, 0x2000, 0x3000, 0x4000, CKF_LIBRARY_CANT_CREATE_OS_THREADS|CKF_OS_LOCKING_OK)
	require.NoError(t, args.Validate())
	assert.True(t, args.UsesCallbacks())
	assert.Equal(t, "create=0x1000 destroy=0x2000 lock=0x3000 unlock=0x4000 flags=0x00000003{CKF_LIBRARY_CANT_CREATE_OS_THREADS|CKF_OS_LOCKING_OK}", args.String())
}

func TestInitializeArgs_Validate(t *testing.T) {
	args := NewInitializeArgs(0x1000, 0, 0x3000, 0, 0)
	assert.ErrorIs(t, args.Validate(), ErrPartialMutexFuncs)
	assert.False(t, args.UsesCallbacks())

	args = NewInitializeArgs(0, 0, 0, 0, 0)
	args.reserved = 1
	assert.ErrorIs(t, args.Validate(), ErrReservedNotNull)
}

func TestInitializeArgs_AllFlagCombinations(t *testing.T) {
	want := map[ULong]string{
		0: "{}",
		1: "{CKF_LIBRARY_CANT_CREATE_OS_THREADS}",
		2: "{CKF_OS_LOCKING_OK}",
		3: "{CKF_LIBRARY_CANT_CREATE_OS_THREADS|CKF_OS_LOCKING_OK}",
	}
	for flags, s := range want {
		args := NewInitializeArgs(0, 0, 0, 0, flags)
		assert.Equal(t, flags, args.Flags)
		assert.Equal(t, s, F2S(args, args.Flags))
	}
}
