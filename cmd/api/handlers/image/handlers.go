package handlers

import (
	"context"

	"giggles.com/cmd/image/service"
	"giggles.com/cmd/model"
)

type ImageService interface {
	UploadImage(ctx context.Context, req *service.UploadImageRequest) (*model.Image, error)
	ListImages(ctx context.Context, userID string, limit int, cursor string) ([]*model.Image, error)
	SearchImages(ctx context.Context, userID, query string, limit int) ([]*model.Image, error)
	DeleteImage(ctx context.Context, imageID, userID string) error
}

type Handler struct {
	svc ImageService
}

func New(svc ImageService) *Handler {
	return &Handler{svc: svc}
}

type ListImagesParam struct {
	UserID string `query:"user_id"`
	Limit  int    `query:"limit"`
	Cursor string `query:"cursor"`
}

type SearchImagesParam struct {
	UserID string `query:"user_id"`
	Query  string `query:"q"`
	Limit  int    `query:"limit"`
}

type DeleteImageParam struct {
	ImageID string `path:"id"`
	UserID  string `query:"user_id"`
}
