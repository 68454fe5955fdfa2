package ugc

import (
	"errors"
	"fmt"

	"github.com/vvka-141/wsup/pkg/wsup"
)

// ResultCode is the platform's numeric call result.
type ResultCode int

const (
	ResultOK                    ResultCode = 1
	ResultFail                  ResultCode = 2
	ResultNoConnection          ResultCode = 3
	ResultInvalidParam          ResultCode = 8
	ResultFileNotFound          ResultCode = 9
	ResultBusy                  ResultCode = 10
	ResultAccessDenied          ResultCode = 15
	ResultTimeout               ResultCode = 16
	ResultServiceUnavailable    ResultCode = 20
	ResultInsufficientPrivilege ResultCode = 24
	ResultLimitExceeded         ResultCode = 25
	ResultRateLimitExceeded     ResultCode = 84
)

var resultNames = map[ResultCode]string{
	ResultOK:                    "ok",
	ResultFail:                  "generic failure",
	ResultNoConnection:          "no connection",
	ResultInvalidParam:          "invalid parameter",
	ResultFileNotFound:          "item not found",
	ResultBusy:                  "busy",
	ResultAccessDenied:          "access denied",
	ResultTimeout:               "timeout",
	ResultServiceUnavailable:    "service unavailable",
	ResultInsufficientPrivilege: "insufficient privilege",
	ResultLimitExceeded:         "limit exceeded",
	ResultRateLimitExceeded:     "rate limit exceeded",
}

func (c ResultCode) String() string {
	if name, ok := resultNames[c]; ok {
		return name
	}
	return fmt.Sprintf("result %d", int(c))
}

// PlatformError is a call the platform answered with a non-OK result.
type PlatformError struct {
	Op   string
	Code ResultCode
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s: platform returned %s (%d)", e.Op, e.Code, int(e.Code))
}

func (e *PlatformError) Unwrap() error { return wsup.ErrPlatformCall }

// IsTransient reports whether err is a platform result worth retrying.
func IsTransient(err error) bool {
	var perr *PlatformError
	if !errors.As(err, &perr) {
		return false
	}
	switch perr.Code {
	case ResultNoConnection, ResultBusy, ResultTimeout, ResultServiceUnavailable, ResultRateLimitExceeded:
		return true
	}
	return false
}
