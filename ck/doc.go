// Package ck mirrors the PKCS#11 structures used to initialize a token
// library and to query its information, byte for byte, together with the
// mutex callback contracts the library calls back through and the name
// tables used to render their flags in diagnostics.
//
// Nothing in this package calls native code. The criptoki package passes
// the address of these values across the cgo boundary.
package ck
