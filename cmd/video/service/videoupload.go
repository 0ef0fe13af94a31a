package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"giggles.com/cmd/model"
	"giggles.com/pkg/constants"
	"giggles.com/pkg/errno"
	"giggles.com/pkg/oss"
	"giggles.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

// UploadVideo 先写对象存储再插入视频记录，插入失败时尽力删除已上传的对象
func (s *VideoService) UploadVideo(ctx context.Context, req *UploadVideoRequest) (*UploadVideoResult, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || req.Body == nil {
		return nil, errno.ValidationErr.WithMessage("user_id and file are required")
	}

	id := uuid.NewString()
	key := utils.ObjectKey(constants.VideoKeyPrefix, userID, id, req.Filename)

	url, err := s.blobs.Put(ctx, key, req.Body, req.Size, req.ContentType)
	if err != nil {
		hlog.CtxErrorf(ctx, "put video blob %s failed: %v", key, err)
		return nil, errno.DependencyErr.WithMessage("failed to store video")
	}

	video := &model.Video{
		ID:        id,
		UserID:    userID,
		S3Key:     key,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
	if caption := strings.TrimSpace(req.Caption); caption != "" {
		video.Caption = &caption
	}
	if err := s.videos.InsertVideo(ctx, video); err != nil {
		hlog.CtxErrorf(ctx, "insert video %s failed: %v", id, err)
		if derr := s.blobs.Delete(ctx, key); derr != nil {
			hlog.CtxWarnf(ctx, "remove orphan blob %s failed: %v", key, derr)
		}
		return nil, errno.DependencyErr.WithMessage("failed to save video")
	}

	s.invalidate(ctx, userID)
	return &UploadVideoResult{ID: id, Key: key, URL: url}, nil
}

// ListUploads 列出用户在对象存储里的原始视频文件
func (s *VideoService) ListUploads(ctx context.Context, userID string) ([]oss.Object, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errno.ValidationErr.WithMessage("user_id is required")
	}
	objects, err := s.blobs.List(ctx, fmt.Sprintf("%s/%s/", constants.VideoKeyPrefix, userID))
	if err != nil {
		hlog.CtxErrorf(ctx, "list uploads of %s failed: %v", userID, err)
		return nil, errno.DependencyErr.WithMessage("failed to list uploads")
	}
	return objects, nil
}
