//go:build cgo && !windows

package criptoki

/*
#include "bridge.h"
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/niclabs/ckabi/ck"
)

func init() {
	if err := CheckLayout(); err != nil {
		panic(err)
	}
}

type field struct {
	name    string
	goValue uintptr
}

// CheckLayout compares the Go structures with the C declarations the
// trampolines and the loader are compiled against.
func CheckLayout() error {
	var info ck.Info
	infoFields := []field{
		{"sizeof(CK_INFO)", unsafe.Sizeof(info)},
		{"CK_INFO.cryptokiVersion", unsafe.Offsetof(info.CryptokiVersion)},
		{"CK_INFO.manufacturerID", unsafe.Offsetof(info.ManufacturerID)},
		{"CK_INFO.flags", ck.InfoFlagsOffset},
		{"CK_INFO.libraryDescription", unsafe.Offsetof(info.LibraryDescription)},
		{"CK_INFO.libraryVersion", unsafe.Offsetof(info.LibraryVersion)},
	}
	for i, f := range infoFields {
		if c := uintptr(C.ckb_info_layout(C.int(i))); c != f.goValue {
			return fmt.Errorf("layout mismatch: %s is %d in C and %d in Go", f.name, c, f.goValue)
		}
	}

	var args ck.InitializeArgs
	argsFields := []field{
		{"sizeof(CK_C_INITIALIZE_ARGS)", unsafe.Sizeof(args)},
		{"CK_C_INITIALIZE_ARGS.CreateMutex", unsafe.Offsetof(args.CreateMutex)},
		{"CK_C_INITIALIZE_ARGS.DestroyMutex", unsafe.Offsetof(args.DestroyMutex)},
		{"CK_C_INITIALIZE_ARGS.LockMutex", unsafe.Offsetof(args.LockMutex)},
		{"CK_C_INITIALIZE_ARGS.UnlockMutex", unsafe.Offsetof(args.UnlockMutex)},
		{"CK_C_INITIALIZE_ARGS.flags", unsafe.Offsetof(args.Flags)},
		{"CK_C_INITIALIZE_ARGS.pReserved", ck.InitializeArgsReservedOffset},
	}
	for i, f := range argsFields {
		if c := uintptr(C.ckb_args_layout(C.int(i))); c != f.goValue {
			return fmt.Errorf("layout mismatch: %s is %d in C and %d in Go", f.name, c, f.goValue)
		}
	}
	if c := uintptr(C.sizeof_CK_ULONG); c != ck.ULongSize {
		return fmt.Errorf("layout mismatch: CK_ULONG is %d bytes in C and %d in Go", c, ck.ULongSize)
	}
	return nil
}
