//go:build cgo && !windows

package criptoki

/*
#cgo LDFLAGS: -ldl -lpthread
#include <stdlib.h>
#include "bridge.h"
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/miekg/pkcs11"
	"go.uber.org/zap"

	"github.com/niclabs/ckabi/ck"
)

var log = zap.NewNop().Sugar()

// SetLogger sets the logger of the package. A nil logger disables logging.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	log = l
}

// Module is a loaded PKCS#11 library.
type Module struct {
	path        string
	handle      unsafe.Pointer
	list        *C.CK_FUNCTION_LIST_HEAD
	initialized bool
	sync.Mutex
}

// Load opens the library at path and fetches its function list.
func Load(path string) (*Module, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	handle := C.ckb_open(cPath)
	if handle == nil {
		return nil, fmt.Errorf("load %s: %s", path, C.GoString(C.ckb_dlerror()))
	}
	var list *C.CK_FUNCTION_LIST_HEAD
	var rv C.CK_RV
	if C.ckb_function_list(handle, &list, &rv) == 0 {
		C.ckb_close(handle)
		return nil, fmt.Errorf("load %s: C_GetFunctionList not exported", path)
	}
	if err := toError("C_GetFunctionList", rv); err != nil {
		C.ckb_close(handle)
		return nil, err
	}
	if list == nil {
		C.ckb_close(handle)
		return nil, ck.NewError("C_GetFunctionList", "got NULL function list", ck.CKR_GENERAL_ERROR)
	}
	log.Debugw("module loaded", "path", path, "cryptoki", ck.Version{Major: uint8(list.version.major), Minor: uint8(list.version.minor)}.String())
	return &Module{
		path:   path,
		handle: handle,
		list:   list,
	}, nil
}

func (m *Module) Path() string {
	return m.path
}

// Initialize calls C_Initialize. args may be nil, in which case the library
// gets NULL and assumes a single threaded caller. The arguments are copied
// into C memory for the duration of the call.
func (m *Module) Initialize(args *ck.InitializeArgs) error {
	m.Lock()
	defer m.Unlock()
	if m.list == nil {
		return ck.NewError("Module.Initialize", "module closed", ck.CKR_CRYPTOKI_NOT_INITIALIZED)
	}
	if m.initialized {
		return ck.NewError("Module.Initialize", "already initialized", ck.CKR_CRYPTOKI_ALREADY_INITIALIZED)
	}
	var cArgs *C.CK_C_INITIALIZE_ARGS
	if args != nil {
		if err := args.Validate(); err != nil {
			return ck.NewError("Module.Initialize", err.Error(), ck.CKR_ARGUMENTS_BAD)
		}
		cArgs = (*C.CK_C_INITIALIZE_ARGS)(C.malloc(C.sizeof_CK_C_INITIALIZE_ARGS))
		defer C.free(unsafe.Pointer(cArgs))
		*(*ck.InitializeArgs)(unsafe.Pointer(cArgs)) = *args
		log.Debugw("initializing", "path", m.path, "args", args.String())
	}
	if err := toError("C_Initialize", C.ckb_initialize(m.list, cArgs)); err != nil {
		return err
	}
	m.initialized = true
	return nil
}

// infoSlack is extra room handed to C_GetInfo. A library compiled with
// default alignment writes a CK_INFO longer than the packed one.
const infoSlack = 32

// GetInfo calls C_GetInfo on a zeroed buffer and decodes it as the packed
// CK_INFO.
func (m *Module) GetInfo() (*ck.Info, error) {
	m.Lock()
	defer m.Unlock()
	if !m.initialized {
		return nil, ck.NewError("Module.GetInfo", "module not initialized", ck.CKR_CRYPTOKI_NOT_INITIALIZED)
	}
	buf := C.calloc(1, C.size_t(ck.InfoSize+infoSlack))
	if buf == nil {
		return nil, ck.NewError("Module.GetInfo", "cannot allocate CK_INFO", ck.CKR_HOST_MEMORY)
	}
	defer C.free(buf)
	if err := toError("C_GetInfo", C.ckb_get_info(m.list, (*C.CK_INFO)(buf))); err != nil {
		return nil, err
	}
	return ck.UnmarshalInfo(C.GoBytes(buf, C.int(ck.InfoSize)))
}

// Finalize calls C_Finalize.
func (m *Module) Finalize() error {
	m.Lock()
	defer m.Unlock()
	if !m.initialized {
		return ck.NewError("Module.Finalize", "module not initialized", ck.CKR_CRYPTOKI_NOT_INITIALIZED)
	}
	if err := toError("C_Finalize", C.ckb_finalize(m.list)); err != nil {
		return err
	}
	m.initialized = false
	return nil
}

// Close finalizes the library if needed and unloads it.
func (m *Module) Close() error {
	m.Lock()
	defer m.Unlock()
	if m.list == nil {
		return nil
	}
	if m.initialized {
		if err := toError("C_Finalize", C.ckb_finalize(m.list)); err != nil {
			log.Warnw("finalize on close failed", "path", m.path, "error", err)
		}
		m.initialized = false
	}
	m.list = nil
	if C.ckb_close(m.handle) != 0 {
		return fmt.Errorf("close %s: %s", m.path, C.GoString(C.ckb_dlerror()))
	}
	return nil
}

func toError(who string, rv C.CK_RV) error {
	if rv == C.CKR_OK {
		return nil
	}
	return ck.NewError(who, pkcs11.Error(rv).Error(), ck.RV(rv))
}
