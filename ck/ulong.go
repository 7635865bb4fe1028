//go:build !windows

package ck

// ULong is CK_ULONG, the C unsigned long of the platform. On Unix it is as
// wide as a pointer.
type ULong uint
