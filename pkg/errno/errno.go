package errno

import (
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pkg/errors"
)

const (
	SuccessCode            = 0
	ServiceErrCode         = 10001
	ValidationErrCode      = 10002
	NotFoundErrCode        = 10003
	DependencyErrCode      = 10004
	TooManyRequestsErrCode = 10005
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

// WithMessage 返回携带新提示信息的副本
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success            = NewErrNo(SuccessCode, "Success")
	ServiceErr         = NewErrNo(ServiceErrCode, "internal server error")
	ValidationErr      = NewErrNo(ValidationErrCode, "invalid request parameters")
	ErrBind            = ValidationErr.WithMessage("failed to bind request parameters")
	NotFoundErr        = NewErrNo(NotFoundErrCode, "resource not found")
	DependencyErr      = NewErrNo(DependencyErrCode, "storage backend unavailable")
	TooManyRequestsErr = NewErrNo(TooManyRequestsErrCode, "too many requests")
)

// ConvertErr convert error to ErrNo
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return ServiceErr
}

// HTTPStatus 错误码对应的 HTTP 状态码
func HTTPStatus(e ErrNo) int {
	switch e.ErrCode {
	case SuccessCode:
		return consts.StatusOK
	case ValidationErrCode:
		return consts.StatusBadRequest
	case NotFoundErrCode:
		return consts.StatusNotFound
	case TooManyRequestsErrCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}
