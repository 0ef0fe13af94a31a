package handlers

import (
	"context"

	"giggles.com/cmd/model"
)

type LikeService interface {
	Like(ctx context.Context, videoID, userID string) (int64, error)
	Unlike(ctx context.Context, videoID, userID string) (int64, error)
	LikedVideos(ctx context.Context, userID string, limit int) ([]string, error)
}

type CommentService interface {
	CreateComment(ctx context.Context, videoID, userID, text string) (*model.Comment, int64, error)
}

type Handler struct {
	likes    LikeService
	comments CommentService
}

func New(likes LikeService, comments CommentService) *Handler {
	return &Handler{likes: likes, comments: comments}
}

type LikeParam struct {
	VideoID string `path:"id"`
	UserID  string `query:"user_id"`
}

type LikeListParam struct {
	UserID string `path:"id"`
	Limit  int    `query:"limit"`
}

type CreateCommentParam struct {
	VideoID string `path:"id"`
	UserID  string `query:"user_id" form:"user_id"`
	Text    string `query:"text" form:"text"`
}
