package ck

import (
	"fmt"
	"unsafe"
)

// C function pointers held by CK_C_INITIALIZE_ARGS. Zero is NULL.
type (
	CreateMutexPtr  uintptr
	DestroyMutexPtr uintptr
	LockMutexPtr    uintptr
	UnlockMutexPtr  uintptr
)

// InitializeArgsSize is the native size of CK_C_INITIALIZE_ARGS. flags is
// padded up to pointer alignment when CK_ULONG is narrower than a pointer.
const InitializeArgsSize = 6 * PtrSize

// InitializeArgs is CK_C_INITIALIZE_ARGS, laid out with the default
// alignment of the platform, like the C declaration.
type InitializeArgs struct {
	CreateMutex  CreateMutexPtr
	DestroyMutex DestroyMutexPtr
	LockMutex    LockMutexPtr
	UnlockMutex  UnlockMutexPtr
	Flags        ULong
	reserved     uintptr
}

var (
	_ [InitializeArgsSize - unsafe.Sizeof(InitializeArgs{})]struct{}
	_ [unsafe.Sizeof(InitializeArgs{}) - InitializeArgsSize]struct{}
)

// InitializeArgsReservedOffset is the offset of pReserved.
const InitializeArgsReservedOffset = unsafe.Offsetof(InitializeArgs{}.reserved)

// NewInitializeArgs fills the native fields. pReserved is left NULL. A
// partial set of callbacks is accepted here; Validate reports it.
func NewInitializeArgs(createMutex CreateMutexPtr, destroyMutex DestroyMutexPtr, lockMutex LockMutexPtr, unlockMutex UnlockMutexPtr, flags ULong) *InitializeArgs {
	return &InitializeArgs{
		CreateMutex:  createMutex,
		DestroyMutex: destroyMutex,
		LockMutex:    lockMutex,
		UnlockMutex:  unlockMutex,
		Flags:        flags,
	}
}

// Reserved returns pReserved, always zero for arguments built in Go.
func (args *InitializeArgs) Reserved() uintptr {
	return args.reserved
}

// UsesCallbacks tells if the four mutex callbacks are supplied.
func (args *InitializeArgs) UsesCallbacks() bool {
	return args.CreateMutex != 0 && args.DestroyMutex != 0 && args.LockMutex != 0 && args.UnlockMutex != 0
}

// Validate checks the rules the native library relies on: the callbacks are
// all set or all NULL, and pReserved is NULL.
func (args *InitializeArgs) Validate() error {
	set := 0
	for _, p := range []uintptr{uintptr(args.CreateMutex), uintptr(args.DestroyMutex), uintptr(args.LockMutex), uintptr(args.UnlockMutex)} {
		if p != 0 {
			set++
		}
	}
	if set != 0 && set != 4 {
		return fmt.Errorf("%w: %d of 4 set", ErrPartialMutexFuncs, set)
	}
	if args.reserved != 0 {
		return ErrReservedNotNull
	}
	return nil
}

func (*InitializeArgs) FlagFamily() *Family {
	return InitializeArgsFlags
}

func (args *InitializeArgs) String() string {
	return fmt.Sprintf("create=%s destroy=%s lock=%s unlock=%s flags=0x%08x%s",
		fptr(uintptr(args.CreateMutex)), fptr(uintptr(args.DestroyMutex)),
		fptr(uintptr(args.LockMutex)), fptr(uintptr(args.UnlockMutex)),
		args.Flags, InitializeArgsFlags.F2S(args.Flags))
}

func fptr(p uintptr) string {
	if p == 0 {
		return "NULL"
	}
	return fmt.Sprintf("%#x", p)
}
