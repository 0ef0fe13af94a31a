package handlers

import (
	"context"

	"giggles.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

// CreateComment user_id 和 text 可以放在 query 里，也可以放在表单里
func (h *Handler) CreateComment(ctx context.Context, c *app.RequestContext) {
	var param CreateCommentParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	comment, count, err := h.comments.CreateComment(ctx, param.VideoID, param.UserID, param.Text)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"comment": comment, "comment_count": count})
}
