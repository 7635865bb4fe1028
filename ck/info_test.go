package ck

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "1.0", Version{0x01, 0x00}.String())
	assert.Equal(t, "2.40", Version{2, 40}.String())
	assert.Equal(t, "255.128", Version{0xff, 0x80}.String())
}

func TestInfo_Layout(t *testing.T) {
	var info Info
	assert.Equal(t, uintptr(68)+ULongSize, unsafe.Sizeof(info))
	assert.Equal(t, uintptr(1), unsafe.Alignof(info))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(info.CryptokiVersion))
	assert.Equal(t, uintptr(2), unsafe.Offsetof(info.ManufacturerID))
	assert.Equal(t, uintptr(34), InfoFlagsOffset)
	assert.Equal(t, 34+ULongSize, unsafe.Offsetof(info.LibraryDescription))
	assert.Equal(t, 66+ULongSize, unsafe.Offsetof(info.LibraryVersion))
}

func TestInfoSize_PerPointerWidth(t *testing.T) {
	for _, width := range []uintptr{4, 8} {
		assert.Equal(t, 2+32+width+32+2, 68+width)
	}
	assert.Equal(t, uintptr(2+32+32+2)+ULongSize, InfoSize)
}

func TestNewInfo_Zeroed(t *testing.T) {
	info := NewInfo()
	for i, b := range info.Raw() {
		require.Zerof(t, b, "byte %d", i)
	}
	assert.Equal(t, ULong(0), info.Flags())
}

func TestInfo_Flags(t *testing.T) {
	info := NewInfo()
	info.SetFlags(0x80000001)
	assert.Equal(t, ULong(0x80000001), info.Flags())
	assert.Contains(t, info.String(), "flags=0x80000001{0x80000001}")

	raw := info.Raw()
	for i := uintptr(0); i < InfoSize; i++ {
		if i < InfoFlagsOffset || i >= InfoFlagsOffset+ULongSize {
			assert.Zerof(t, raw[i], "byte %d outside flags", i)
		}
	}
}

func TestInfo_Padding(t *testing.T) {
	info := NewInfoFrom(Version{2, 40}, "NICLabs", 0, "ckabi", Version{1, 0})
	assert.Equal(t, "NICLabs"+strings.Repeat(" ", 25), string(info.ManufacturerID[:]))
	assert.Equal(t, "NICLabs", info.Manufacturer())
	assert.Equal(t, "ckabi", info.Description())

	info.SetManufacturerID(strings.Repeat("x", 32))
	assert.Equal(t, strings.Repeat("x", 32), info.Manufacturer())
}

func TestInfo_BufferCapacity(t *testing.T) {
	info := NewInfo()
	assert.PanicsWithError(t, "buffer capacity exceeded: manufacturerID holds 32 bytes, got 33", func() {
		info.SetManufacturerID(strings.Repeat("x", 33))
	})
	assert.Panics(t, func() {
		NewInfoFrom(Version{}, "", 0, strings.Repeat("d", 40), Version{})
	})
	assert.Zero(t, info.ManufacturerID[0], "a failed set must not write")
}

func TestInfo_String(t *testing.T) {
	info := NewInfoFrom(Version{2, 40}, "NICLabs", 0, "desc", Version{1, 0})
	info.ManufacturerID[31] = 0x00
	s := info.String()
	assert.Equal(t, "(\n"+
		"  version=2.40\n"+
		"  manufacturerID=NICLabs"+strings.Repeat(" ", 24)+`\x00`+"\n"+
		"  flags=0x00000000{}\n"+
		"  libraryDescription=desc"+strings.Repeat(" ", 28)+"\n"+
		"  libraryVersion=1.0\n"+
		")", s)
}

func TestUnmarshalInfo(t *testing.T) {
	info := NewInfoFrom(Version{3, 1}, "m", 7, "d", Version{0, 9})
	copied, err := UnmarshalInfo(info.Raw())
	require.NoError(t, err)
	assert.Equal(t, *info, *copied)

	_, err = UnmarshalInfo(make([]byte, 10))
	assert.Error(t, err)
}

func TestInfo_FlagFamily(t *testing.T) {
	assert.Same(t, InfoFlags, (&Info{}).FlagFamily())
	assert.Equal(t, "{0x00000004}", F2S(&Info{}, 4))
}
