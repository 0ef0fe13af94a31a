package service

import (
	"context"
	"io"
	"time"

	"giggles.com/cmd/model"
	"giggles.com/pkg/oss"
)

type VideoStore interface {
	InsertVideo(ctx context.Context, video *model.Video) error
	GetVideoWithAuthor(ctx context.Context, videoID string) (*model.VideoWithAuthor, error)
	FeedList(ctx context.Context, userID string, before *time.Time, limit int) ([]*model.VideoWithAuthor, error)
}

type CommentLister interface {
	ListVideoComments(ctx context.Context, videoID string, limit int) ([]*model.Comment, error)
}

// CountReader 详情页读取点赞数和评论数
type CountReader interface {
	ReadCountsForDetail(ctx context.Context, video *model.Video) (likes, comments int64)
}

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	List(ctx context.Context, prefix string) ([]oss.Object, error)
	Delete(ctx context.Context, key string) error
}

type ProfileInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...string) error
}

type UploadVideoRequest struct {
	UserID      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Caption     string
}

type UploadVideoResult struct {
	ID  string `json:"id"`
	Key string `json:"key"`
	URL string `json:"url"`
}

type VideoDetail struct {
	Video    *model.VideoWithAuthor `json:"video"`
	Comments []*model.Comment       `json:"comments"`
}
