package ck

import (
	"fmt"
	"unsafe"
)

const (
	// ULongSize is the size in bytes of CK_ULONG on this platform.
	ULongSize = unsafe.Sizeof(ULong(0))
	// PtrSize is the size in bytes of a native pointer.
	PtrSize = unsafe.Sizeof(uintptr(0))
)

// Flags bits of CK_C_INITIALIZE_ARGS.
const (
	CKF_LIBRARY_CANT_CREATE_OS_THREADS ULong = 0x00000001
	CKF_OS_LOCKING_OK                  ULong = 0x00000002
)

// Version is CK_VERSION.
type Version struct {
	Major uint8
	Minor uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
