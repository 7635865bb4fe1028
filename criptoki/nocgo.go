//go:build !cgo || windows

package criptoki

import (
	"errors"

	"go.uber.org/zap"

	"github.com/niclabs/ckabi/ck"
)

// ErrNoCGO is returned by every native operation when the package is built
// without cgo.
var ErrNoCGO = errors.New("PKCS#11 modules require cgo on a Unix target (build with CGO_ENABLED=1)")

func SetLogger(*zap.SugaredLogger) {}

func CheckLayout() error {
	return ErrNoCGO
}

func RegisterMutexFuncs(funcs ck.MutexFuncs) error {
	if err := funcs.Validate(); err != nil {
		return err
	}
	return ErrNoCGO
}

// MutexArgs has no trampolines to point at without cgo.
func MutexArgs(flags ck.ULong) *ck.InitializeArgs {
	return NoMutexArgs(flags)
}

func NoMutexArgs(flags ck.ULong) *ck.InitializeArgs {
	return ck.NewInitializeArgs(0, 0, 0, 0, flags)
}

func SelfTest(*ck.InitializeArgs, int, int) (int64, error) {
	return 0, ErrNoCGO
}

type Module struct{}

func Load(string) (*Module, error) {
	return nil, ErrNoCGO
}

func (*Module) Path() string                        { return "" }
func (*Module) Initialize(*ck.InitializeArgs) error { return ErrNoCGO }
func (*Module) GetInfo() (*ck.Info, error)          { return nil, ErrNoCGO }
func (*Module) Finalize() error                     { return ErrNoCGO }
func (*Module) Close() error                        { return nil }
