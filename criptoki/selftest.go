//go:build cgo && !windows

package criptoki

/*
#include <stdlib.h>
#include "bridge.h"
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/niclabs/ckabi/ck"
)

// SelfTest calls the callbacks of args through their C function pointers,
// like a token library does: it creates one mutex, then threads native
// threads each lock it, bump a shared counter and unlock it iterations
// times, and finally destroys it. It returns the counter, which equals
// threads*iterations when the callbacks provide mutual exclusion.
func SelfTest(args *ck.InitializeArgs, threads, iterations int) (int64, error) {
	if threads < 1 || threads > MaxSelfTestThreads || iterations < 0 {
		return 0, ck.NewError("SelfTest", fmt.Sprintf("threads must be in [1, %d] and iterations not negative", MaxSelfTestThreads), ck.CKR_ARGUMENTS_BAD)
	}
	if !args.UsesCallbacks() {
		return 0, ck.NewError("SelfTest", "no mutex callbacks to exercise", ck.CKR_ARGUMENTS_BAD)
	}
	cArgs := (*C.CK_C_INITIALIZE_ARGS)(C.malloc(C.sizeof_CK_C_INITIALIZE_ARGS))
	defer C.free(unsafe.Pointer(cArgs))
	*(*ck.InitializeArgs)(unsafe.Pointer(cArgs)) = *args
	var counter C.long
	rv := C.ckb_selftest(cArgs, C.int(threads), C.int(iterations), &counter)
	log.Debugw("self test", "threads", threads, "iterations", iterations, "counter", int64(counter), "rv", ck.RV(rv).String())
	if err := toError("SelfTest", rv); err != nil {
		return int64(counter), err
	}
	return int64(counter), nil
}
