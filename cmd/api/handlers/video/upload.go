package handlers

import (
	"context"
	"strings"

	"giggles.com/cmd/api/handlers/pack"
	"giggles.com/cmd/video/service"
	"giggles.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

// UploadVideo multipart: user_id, file, caption(可选)
func (h *Handler) UploadVideo(ctx context.Context, c *app.RequestContext) {
	userID := strings.TrimSpace(string(c.FormValue("user_id")))
	if userID == "" {
		pack.SendResponse(c, errno.ValidationErr.WithMessage("user_id is required"), nil)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		pack.SendResponse(c, errno.ValidationErr.WithMessage("file is required"), nil)
		return
	}
	file, err := fh.Open()
	if err != nil {
		hlog.CtxErrorf(ctx, "open upload %s failed: %v", fh.Filename, err)
		pack.SendResponse(c, errno.ValidationErr.WithMessage("failed to read file"), nil)
		return
	}
	defer file.Close()

	resp, err := h.svc.UploadVideo(ctx, &service.UploadVideoRequest{
		UserID:      userID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
		Caption:     string(c.FormValue("caption")),
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, resp)
}

func (h *Handler) ListUploads(ctx context.Context, c *app.RequestContext) {
	var param ListUploadsParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	objects, err := h.svc.ListUploads(ctx, param.UserID)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"uploads": objects})
}
