//go:build cgo && !windows

package criptoki

/*
#include "bridge.h"
*/
import "C"
import (
	"sync/atomic"
	"unsafe"

	"github.com/niclabs/ckabi/ck"
)

var mutexFuncs atomic.Pointer[ck.MutexFuncs]

// RegisterMutexFuncs sets the callbacks the trampolines dispatch to. It may
// be called again; calls already running keep the previous set.
func RegisterMutexFuncs(funcs ck.MutexFuncs) error {
	if err := funcs.Validate(); err != nil {
		return err
	}
	mutexFuncs.Store(&funcs)
	return nil
}

func registered() ck.MutexFuncs {
	if funcs := mutexFuncs.Load(); funcs != nil {
		return *funcs
	}
	return ck.MutexFuncs{}
}

// MutexArgs returns initialize arguments pointing at the trampolines, which
// stay valid for the life of the process.
func MutexArgs(flags ck.ULong) *ck.InitializeArgs {
	var cArgs C.CK_C_INITIALIZE_ARGS
	C.ckb_mutex_args(&cArgs)
	return ck.NewInitializeArgs(
		ck.CreateMutexPtr(uintptr(unsafe.Pointer(cArgs.CreateMutex))),
		ck.DestroyMutexPtr(uintptr(unsafe.Pointer(cArgs.DestroyMutex))),
		ck.LockMutexPtr(uintptr(unsafe.Pointer(cArgs.LockMutex))),
		ck.UnlockMutexPtr(uintptr(unsafe.Pointer(cArgs.UnlockMutex))),
		flags,
	)
}

// NoMutexArgs returns initialize arguments without callbacks.
func NoMutexArgs(flags ck.ULong) *ck.InitializeArgs {
	return ck.NewInitializeArgs(0, 0, 0, 0, flags)
}

//export ckGoCreateMutex
func ckGoCreateMutex(ppMutex C.CK_VOID_PTR_PTR) C.CK_RV {
	if ppMutex == nil {
		return C.CKR_ARGUMENTS_BAD
	}
	h, rv := registered().CallCreate()
	if rv == ck.CKR_OK {
		C.ckb_set_handle(ppMutex, C.uintptr_t(h))
	}
	return C.CK_RV(rv)
}

//export ckGoDestroyMutex
func ckGoDestroyMutex(pMutex C.CK_VOID_PTR) C.CK_RV {
	return C.CK_RV(registered().CallDestroy(handleOf(pMutex)))
}

//export ckGoLockMutex
func ckGoLockMutex(pMutex C.CK_VOID_PTR) C.CK_RV {
	return C.CK_RV(registered().CallLock(handleOf(pMutex)))
}

//export ckGoUnlockMutex
func ckGoUnlockMutex(pMutex C.CK_VOID_PTR) C.CK_RV {
	return C.CK_RV(registered().CallUnlock(handleOf(pMutex)))
}

func handleOf(pMutex C.CK_VOID_PTR) ck.MutexHandle {
	return ck.MutexHandle(C.ckb_handle(pMutex))
}
