package ck

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// MutexHandle is the opaque value a library gets back from CreateMutex. It is
// stored in native memory, so it is an integer and never a Go pointer.
type MutexHandle uintptr

// Mutex callback contracts. A token library may call them at any time, from
// threads it created itself, concurrently.
type (
	CreateMutexFunc  func() (MutexHandle, RV)
	DestroyMutexFunc func(MutexHandle) RV
	LockMutexFunc    func(MutexHandle) RV
	UnlockMutexFunc  func(MutexHandle) RV
)

// MutexFuncs bundles the four callbacks handed to a library.
type MutexFuncs struct {
	Create  CreateMutexFunc
	Destroy DestroyMutexFunc
	Lock    LockMutexFunc
	Unlock  UnlockMutexFunc
}

func (m MutexFuncs) set() int {
	n := 0
	if m.Create != nil {
		n++
	}
	if m.Destroy != nil {
		n++
	}
	if m.Lock != nil {
		n++
	}
	if m.Unlock != nil {
		n++
	}
	return n
}

// Present tells if the four callbacks are set.
func (m MutexFuncs) Present() bool {
	return m.set() == 4
}

// Validate accepts all four callbacks or none.
func (m MutexFuncs) Validate() error {
	if n := m.set(); n != 0 && n != 4 {
		return fmt.Errorf("%w: %d of 4 set", ErrPartialMutexFuncs, n)
	}
	return nil
}

// The Call methods run a callback on behalf of native code. A missing
// callback yields CKR_FUNCTION_FAILED and a panic yields CKR_GENERAL_ERROR,
// so nothing unwinds into the caller.

func (m MutexFuncs) CallCreate() (h MutexHandle, rv RV) {
	defer recoverRV("CreateMutex", &rv)
	if m.Create == nil {
		return 0, CKR_FUNCTION_FAILED
	}
	return m.Create()
}

func (m MutexFuncs) CallDestroy(h MutexHandle) (rv RV) {
	defer recoverRV("DestroyMutex", &rv)
	if m.Destroy == nil {
		return CKR_FUNCTION_FAILED
	}
	return m.Destroy(h)
}

func (m MutexFuncs) CallLock(h MutexHandle) (rv RV) {
	defer recoverRV("LockMutex", &rv)
	if m.Lock == nil {
		return CKR_FUNCTION_FAILED
	}
	return m.Lock(h)
}

func (m MutexFuncs) CallUnlock(h MutexHandle) (rv RV) {
	defer recoverRV("UnlockMutex", &rv)
	if m.Unlock == nil {
		return CKR_FUNCTION_FAILED
	}
	return m.Unlock(h)
}

func recoverRV(who string, rv *RV) {
	if r := recover(); r != nil {
		*rv = ErrorToRV(NewError(who, fmt.Sprintf("panic: %v", r), CKR_GENERAL_ERROR))
	}
}

// MutexTable is the default set of callbacks: mutexes live in a table and
// the library only sees their index.
type MutexTable struct {
	last    atomic.Uintptr
	mutexes sync.Map // MutexHandle -> chan struct{}
	count   atomic.Int64
}

func NewMutexTable() *MutexTable {
	return &MutexTable{}
}

// Funcs returns the table callbacks.
func (t *MutexTable) Funcs() MutexFuncs {
	return MutexFuncs{
		Create:  t.Create,
		Destroy: t.Destroy,
		Lock:    t.Lock,
		Unlock:  t.Unlock,
	}
}

// Len is the number of live mutexes.
func (t *MutexTable) Len() int {
	return int(t.count.Load())
}

func (t *MutexTable) Create() (MutexHandle, RV) {
	h := MutexHandle(t.last.Add(1))
	t.mutexes.Store(h, make(chan struct{}, 1))
	t.count.Add(1)
	return h, CKR_OK
}

func (t *MutexTable) Destroy(h MutexHandle) RV {
	if _, ok := t.mutexes.LoadAndDelete(h); !ok {
		return CKR_MUTEX_BAD
	}
	t.count.Add(-1)
	return CKR_OK
}

func (t *MutexTable) Lock(h MutexHandle) RV {
	m, ok := t.get(h)
	if !ok {
		return CKR_MUTEX_BAD
	}
	m <- struct{}{}
	return CKR_OK
}

func (t *MutexTable) Unlock(h MutexHandle) RV {
	m, ok := t.get(h)
	if !ok {
		return CKR_MUTEX_BAD
	}
	select {
	case <-m:
		return CKR_OK
	default:
		return CKR_MUTEX_NOT_LOCKED
	}
}

func (t *MutexTable) get(h MutexHandle) (chan struct{}, bool) {
	v, ok := t.mutexes.Load(h)
	if !ok {
		return nil, false
	}
	return v.(chan struct{}), true
}
