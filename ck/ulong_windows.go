package ck

// ULong is CK_ULONG. Windows is LLP64, so unsigned long stays 32 bits wide
// even on 64 bit targets.
type ULong uint32
