package handlers

import (
	"context"

	"giggles.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

func (h *Handler) GetUserInfo(ctx context.Context, c *app.RequestContext) {
	var param GetUserInfoParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	profile, err := h.svc.UserProfile(ctx, param.UserID)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"user": profile})
}
