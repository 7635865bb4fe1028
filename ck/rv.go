package ck

// RV is CK_RV, the status code returned by every PKCS#11 entry point and by
// the mutex callbacks.
type RV ULong

// Return values this layer produces or inspects.
const (
	CKR_OK                           RV = 0x00000000
	CKR_HOST_MEMORY                  RV = 0x00000002
	CKR_GENERAL_ERROR                RV = 0x00000005
	CKR_FUNCTION_FAILED              RV = 0x00000006
	CKR_ARGUMENTS_BAD                RV = 0x00000007
	CKR_NEED_TO_CREATE_THREADS       RV = 0x00000009
	CKR_CANT_LOCK                    RV = 0x0000000A
	CKR_FUNCTION_NOT_SUPPORTED       RV = 0x00000054
	CKR_CRYPTOKI_NOT_INITIALIZED     RV = 0x00000190
	CKR_CRYPTOKI_ALREADY_INITIALIZED RV = 0x00000191
	CKR_MUTEX_BAD                    RV = 0x000001A0
	CKR_MUTEX_NOT_LOCKED             RV = 0x000001A1
)

// ReturnValues resolves RV names.
var ReturnValues = NewFamily("CKR",
	Const{"CKR_OK", ULong(CKR_OK)},
	Const{"CKR_HOST_MEMORY", ULong(CKR_HOST_MEMORY)},
	Const{"CKR_GENERAL_ERROR", ULong(CKR_GENERAL_ERROR)},
	Const{"CKR_FUNCTION_FAILED", ULong(CKR_FUNCTION_FAILED)},
	Const{"CKR_ARGUMENTS_BAD", ULong(CKR_ARGUMENTS_BAD)},
	Const{"CKR_NEED_TO_CREATE_THREADS", ULong(CKR_NEED_TO_CREATE_THREADS)},
	Const{"CKR_CANT_LOCK", ULong(CKR_CANT_LOCK)},
	Const{"CKR_FUNCTION_NOT_SUPPORTED", ULong(CKR_FUNCTION_NOT_SUPPORTED)},
	Const{"CKR_CRYPTOKI_NOT_INITIALIZED", ULong(CKR_CRYPTOKI_NOT_INITIALIZED)},
	Const{"CKR_CRYPTOKI_ALREADY_INITIALIZED", ULong(CKR_CRYPTOKI_ALREADY_INITIALIZED)},
	Const{"CKR_MUTEX_BAD", ULong(CKR_MUTEX_BAD)},
	Const{"CKR_MUTEX_NOT_LOCKED", ULong(CKR_MUTEX_NOT_LOCKED)},
)

func (rv RV) String() string {
	return ReturnValues.I2S(ULong(rv))
}
