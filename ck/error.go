package ck

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrBufferCapacity is raised (as a panic) when content does not fit a
	// fixed size field.
	ErrBufferCapacity = errors.New("buffer capacity exceeded")
	// ErrPartialMutexFuncs is returned when only some of the four mutex
	// callbacks are set.
	ErrPartialMutexFuncs = errors.New("mutex callbacks must be all set or all NULL")
	// ErrReservedNotNull is returned when pReserved is not NULL.
	ErrReservedNotNull = errors.New("pReserved must be NULL")
)

var log = zap.NewNop().Sugar()

// SetLogger sets the logger used to report errors converted to return
// values. A nil logger disables logging.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	log = l
}

// Error is a failure with the return value it maps to.
type Error struct {
	Who         string
	Description string
	Code        RV
}

func NewError(who, description string, code RV) *Error {
	return &Error{
		Who:         who,
		Description: description,
		Code:        code,
	}
}

func (err Error) Error() string {
	return fmt.Sprintf("%s: %s [%s]", err.Who, err.Description, err.Code)
}

// ErrorToRV extracts the return value from an error, and logs it.
func ErrorToRV(err error) RV {
	if err == nil {
		return CKR_OK
	}
	var ckErr *Error
	if errors.As(err, &ckErr) {
		log.Errorw(ckErr.Description, "who", ckErr.Who, "code", ckErr.Code.String())
		return ckErr.Code
	}
	log.Errorw("general error", "error", err.Error(), "code", CKR_GENERAL_ERROR.String())
	return CKR_GENERAL_ERROR
}
