package handlers

import (
	"context"

	"giggles.com/cmd/model"
	"giggles.com/cmd/video/service"
	"giggles.com/pkg/oss"
)

type VideoService interface {
	UploadVideo(ctx context.Context, req *service.UploadVideoRequest) (*service.UploadVideoResult, error)
	ListUploads(ctx context.Context, userID string) ([]oss.Object, error)
	Feed(ctx context.Context, limit int, cursor string) ([]*model.VideoWithAuthor, error)
	UserVideos(ctx context.Context, userID string, limit int, cursor string) ([]*model.VideoWithAuthor, error)
	VideoDetail(ctx context.Context, videoID string, commentsLimit int) (*service.VideoDetail, error)
}

type Handler struct {
	svc VideoService
}

func New(svc VideoService) *Handler {
	return &Handler{svc: svc}
}

type ListUploadsParam struct {
	UserID string `query:"user_id"`
}

type FeedListParam struct {
	Limit  int    `query:"limit"`
	Cursor string `query:"cursor"`
}

type UserVideosParam struct {
	UserID string `path:"id"`
	Limit  int    `query:"limit"`
	Cursor string `query:"cursor"`
}

type VideoDetailParam struct {
	VideoID       string `path:"id"`
	CommentsLimit int    `query:"comments_limit"`
}
