package ck

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestI2S(t *testing.T) {
	assert.Equal(t, "CKF_LIBRARY_CANT_CREATE_OS_THREADS", I2S(&InitializeArgs{}, 0x00000001))
	assert.Equal(t, "CKF_OS_LOCKING_OK", InitializeArgsFlags.I2S(0x00000002))
	assert.Equal(t, "0xffff0000", InitializeArgsFlags.I2S(0xFFFF0000))
	assert.Equal(t, "0x00000003", InitializeArgsFlags.I2S(3))
}

func TestF2S(t *testing.T) {
	assert.Equal(t, "{CKF_LIBRARY_CANT_CREATE_OS_THREADS|CKF_OS_LOCKING_OK}", InitializeArgsFlags.F2S(0x00000003))
	assert.Equal(t, "{}", InitializeArgsFlags.F2S(0))
	assert.Equal(t, "{CKF_OS_LOCKING_OK|0x00000010}", InitializeArgsFlags.F2S(0x12))
	assert.Equal(t, "{0x00000030}", InitializeArgsFlags.F2S(0x30))
}

func TestF2S_ZeroConstantNeverMatches(t *testing.T) {
	f := NewFamily("CKX",
		Const{"CKX_HIGH", 0x4},
		Const{"CKX_NONE", 0},
		Const{"CKX_LOW", 0x1},
		Const{"CKX_BOTH", 0x5},
	)
	assert.Equal(t, "{}", f.F2S(0))
	assert.Equal(t, "CKX_NONE", f.I2S(0))
	assert.Equal(t, "{CKX_LOW|CKX_HIGH}", f.F2S(5))
	assert.Equal(t, "CKX_BOTH", f.I2S(5))
}

func TestFamily_FirstNameWins(t *testing.T) {
	f := NewFamily("CKX", Const{"CKX_A", 1}, Const{"CKX_ALIAS", 1})
	assert.Equal(t, "CKX_A", f.I2S(1))
	v, ok := f.Value("CKX_ALIAS")
	assert.True(t, ok)
	assert.Equal(t, ULong(1), v)
}

func TestFamily_ConcurrentBuild(t *testing.T) {
	f := NewFamily("CKF", InitializeArgsFlags.Consts()...)
	const readers = 64
	tables := make([]*nameTable, readers)
	names := make([]string, readers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			tables[i] = f.lookup()
			names[i] = f.F2S(3)
		}(i)
	}
	close(start)
	wg.Wait()
	for i := 1; i < readers; i++ {
		require.Same(t, tables[0], tables[i])
		require.Equal(t, names[0], names[i])
	}
	assert.Len(t, tables[0].bits, 2)
}

func TestFamily_ParseFlags(t *testing.T) {
	flags, err := InitializeArgsFlags.ParseFlags([]string{"CKF_OS_LOCKING_OK", " 0x10 ", ""})
	require.NoError(t, err)
	assert.Equal(t, ULong(0x12), flags)

	_, err = InitializeArgsFlags.ParseFlags([]string{"CKF_UNKNOWN"})
	assert.EqualError(t, err, `unknown CKF flag "CKF_UNKNOWN"`)
}

func TestRV_String(t *testing.T) {
	assert.Equal(t, "CKR_OK", CKR_OK.String())
	assert.Equal(t, "CKR_MUTEX_NOT_LOCKED", CKR_MUTEX_NOT_LOCKED.String())
	assert.Equal(t, "0x00000bad", RV(0xbad).String())
}
