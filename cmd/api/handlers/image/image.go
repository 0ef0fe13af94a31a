package handlers

import (
	"context"
	"strings"

	"giggles.com/cmd/api/handlers/pack"
	"giggles.com/cmd/image/service"
	"giggles.com/pkg/errno"
	pkgutils "giggles.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

// UploadImage multipart: user_id, file
func (h *Handler) UploadImage(ctx context.Context, c *app.RequestContext) {
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

	image, err := h.svc.UploadImage(ctx, &service.UploadImageRequest{
		UserID:      userID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"image": image})
}

func (h *Handler) ListImages(ctx context.Context, c *app.RequestContext) {
	var param ListImagesParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	images, err := h.svc.ListImages(ctx, param.UserID, param.Limit, param.Cursor)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	resp := utils.H{"images": images}
	if n := len(images); n > 0 {
		resp["next_cursor"] = pkgutils.FormatCursor(images[n-1].CreatedAt)
	}
	pack.SendResponse(c, nil, resp)
}

func (h *Handler) SearchImages(ctx context.Context, c *app.RequestContext) {
	var param SearchImagesParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	images, err := h.svc.SearchImages(ctx, param.UserID, param.Query, param.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"images": images})
}

func (h *Handler) DeleteImage(ctx context.Context, c *app.RequestContext) {
	var param DeleteImageParam
	if err := c.Bind(&param); err != nil {
		pack.SendResponse(c, pack.BindErr(err), nil)
		return
	}
	if err := h.svc.DeleteImage(ctx, param.ImageID, param.UserID); err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, nil, utils.H{"ok": true})
}
