package handlers

import (
	"context"

	"giggles.com/cmd/api/handlers/pack"
	"giggles.com/cmd/model"
	pkgutils "giggles.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

func (h *Handler) FeedList(ctx context.Context, c *app.RequestContext) {
	var param FeedListParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	videos, err := h.svc.Feed(ctx, param.Limit, param.Cursor)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, videoPage(videos))
}

func (h *Handler) UserVideos(ctx context.Context, c *app.RequestContext) {
	var param UserVideosParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	videos, err := h.svc.UserVideos(ctx, param.UserID, param.Limit, param.Cursor)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, videoPage(videos))
}

func (h *Handler) VideoDetail(ctx context.Context, c *app.RequestContext) {
	var param VideoDetailParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	detail, err := h.svc.VideoDetail(ctx, param.VideoID, param.CommentsLimit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, detail)
}

// videoPage next_cursor 取本页最后一条的 created_at，空页不返回游标
func videoPage(videos []*model.VideoWithAuthor) utils.H {
	resp := utils.H{"videos": videos}
	if n := len(videos); n > 0 {
		resp["next_cursor"] = pkgutils.FormatCursor(videos[n-1].CreatedAt)
	}
	return resp
}
