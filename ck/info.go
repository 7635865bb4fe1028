package ck

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"
)

const (
	// InfoSize is the native size of CK_INFO: its fields back to back, with
	// no padding around flags.
	InfoSize = 2 + 32 + ULongSize + 32 + 2
	// InfoFlagsOffset is the offset of the flags field inside CK_INFO.
	InfoFlagsOffset = unsafe.Offsetof(Info{}.flags)
)

// Info is CK_INFO. The native structure is packed: flags follows the 32 byte
// manufacturer ID without any alignment gap. Every field here is a byte
// array, so the Go layout has alignment 1 and matches it exactly.
type Info struct {
	CryptokiVersion    Version
	ManufacturerID     [32]byte
	flags              [ULongSize]byte
	LibraryDescription [32]byte
	LibraryVersion     Version
}

// Compile time layout assertions: both differences must be zero.
var (
	_ [InfoSize - unsafe.Sizeof(Info{})]struct{}
	_ [unsafe.Sizeof(Info{}) - InfoSize]struct{}
	_ [1 - unsafe.Alignof(Info{})]struct{}
)

// NewInfo returns a zeroed Info, ready to be filled by C_GetInfo.
func NewInfo() *Info {
	return &Info{}
}

// NewInfoFrom builds a populated Info. Text longer than 32 bytes panics
// with ErrBufferCapacity.
func NewInfoFrom(cryptokiVersion Version, manufacturerID string, flags ULong, description string, libraryVersion Version) *Info {
	info := NewInfo()
	info.CryptokiVersion = cryptokiVersion
	info.SetManufacturerID(manufacturerID)
	info.SetFlags(flags)
	info.SetLibraryDescription(description)
	info.LibraryVersion = libraryVersion
	return info
}

// UnmarshalInfo copies a native CK_INFO image.
func UnmarshalInfo(raw []byte) (*Info, error) {
	if uintptr(len(raw)) != InfoSize {
		return nil, fmt.Errorf("CK_INFO is %d bytes on this platform, got %d", InfoSize, len(raw))
	}
	info := NewInfo()
	copy(info.Raw(), raw)
	return info, nil
}

// Raw is the native memory image of info. It aliases info.
func (info *Info) Raw() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(info)), InfoSize)
}

func (info *Info) Flags() ULong {
	if ULongSize == 8 {
		return ULong(binary.NativeEndian.Uint64(info.flags[:]))
	}
	return ULong(binary.NativeEndian.Uint32(info.flags[:]))
}

// SetFlags stores flags. CK_INFO defines no flags but nonzero values are
// kept as they are.
func (info *Info) SetFlags(flags ULong) {
	if ULongSize == 8 {
		binary.NativeEndian.PutUint64(info.flags[:], uint64(flags))
		return
	}
	binary.NativeEndian.PutUint32(info.flags[:], uint32(flags))
}

func (info *Info) SetManufacturerID(id string) {
	pad(info.ManufacturerID[:], id, "manufacturerID")
}

func (info *Info) SetLibraryDescription(description string) {
	pad(info.LibraryDescription[:], description, "libraryDescription")
}

// Manufacturer is the manufacturer ID without its padding.
func (info *Info) Manufacturer() string {
	return unpad(info.ManufacturerID[:])
}

// Description is the library description without its padding.
func (info *Info) Description() string {
	return unpad(info.LibraryDescription[:])
}

func (*Info) FlagFamily() *Family {
	return InfoFlags
}

func (info *Info) String() string {
	flags := info.Flags()
	return fmt.Sprintf("(\n  version=%s\n  manufacturerID=%s\n  flags=0x%08x%s\n  libraryDescription=%s\n  libraryVersion=%s\n)",
		info.CryptokiVersion, Escape(info.ManufacturerID[:]),
		flags, InfoFlags.F2S(flags), Escape(info.LibraryDescription[:]),
		info.LibraryVersion)
}

// pad copies s into dst and fills the rest with spaces.
func pad(dst []byte, s string, field string) {
	if len(s) > len(dst) {
		panic(fmt.Errorf("%w: %s holds %d bytes, got %d", ErrBufferCapacity, field, len(dst), len(s)))
	}
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}

func unpad(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}
