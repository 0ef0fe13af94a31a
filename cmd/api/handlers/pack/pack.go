package pack

import (
	"giggles.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// ErrorResponse 错误时的响应体，不带堆栈和内部标识
type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// SendResponse pack response
// 成功时直接返回 data，失败时按错误码选择 HTTP 状态码
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	if err == nil {
		c.JSON(consts.StatusOK, data)
		return
	}
	Err := errno.ConvertErr(err)
	c.JSON(errno.HTTPStatus(Err), ErrorResponse{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
	})
}

// BindErr 参数绑定失败统一按 400 处理
func BindErr(err error) error {
	return errno.ErrBind.WithMessage(err.Error())
}
