package handlers

import (
	"context"

	"giggles.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

func (h *Handler) Follow(ctx context.Context, c *app.RequestContext) {
	h.relationAction(ctx, c, h.svc.Follow)
}

func (h *Handler) Unfollow(ctx context.Context, c *app.RequestContext) {
	h.relationAction(ctx, c, h.svc.Unfollow)
}

func (h *Handler) relationAction(ctx context.Context, c *app.RequestContext, action func(ctx context.Context, target, follower string) (int64, error)) {
	var param RelationParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	followers, err := action(ctx, param.Target, param.FollowerID)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"followers": followers})
}

// IsFollowing 永远返回 200
func (h *Handler) IsFollowing(ctx context.Context, c *app.RequestContext) {
	var param RelationParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, nil, utils.H{"is_following": false})
		return
	}
	pack.SendResponse(c, nil, utils.H{"is_following": h.svc.IsFollowing(ctx, param.Target, param.FollowerID)})
}
