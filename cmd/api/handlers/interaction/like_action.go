package handlers

import (
	"context"

	"giggles.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

func (h *Handler) LikeVideo(ctx context.Context, c *app.RequestContext) {
	h.likeAction(ctx, c, h.likes.Like)
}

func (h *Handler) UnlikeVideo(ctx context.Context, c *app.RequestContext) {
	h.likeAction(ctx, c, h.likes.Unlike)
}

func (h *Handler) likeAction(ctx context.Context, c *app.RequestContext, action func(ctx context.Context, videoID, userID string) (int64, error)) {
	var param LikeParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	count, err := action(ctx, param.VideoID, param.UserID)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"ok": true, "like_count": count})
}

func (h *Handler) LikeList(ctx context.Context, c *app.RequestContext) {
	var param LikeListParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	ids, err := h.likes.LikedVideos(ctx, param.UserID, param.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"video_ids": ids})
}
