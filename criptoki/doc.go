// Package criptoki connects the structures of package ck with a native
// PKCS#11 library through cgo.
//
// It exports four C-callable trampolines for the mutex callbacks, asserts at
// startup that the Go and C layouts of CK_INFO and CK_C_INITIALIZE_ARGS
// agree, and loads a token library far enough to call C_Initialize,
// C_GetInfo and C_Finalize.
package criptoki

// MaxSelfTestThreads bounds the threads SelfTest starts. It matches
// CKB_MAX_THREADS in bridge.h.
const MaxSelfTestThreads = 64
