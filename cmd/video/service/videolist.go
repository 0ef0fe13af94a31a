package service

import (
	"context"
	"strings"

	"giggles.com/cmd/model"
	"giggles.com/pkg/constants"
	"giggles.com/pkg/errno"
	"giggles.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type VideoService struct {
	videos   VideoStore
	comments CommentLister
	counts   CountReader
	blobs    BlobStore
	profiles ProfileInvalidator
}

// NewVideoService profiles 可以为 nil
func NewVideoService(videos VideoStore, comments CommentLister, counts CountReader, blobs BlobStore, profiles ProfileInvalidator) *VideoService {
	return &VideoService{videos: videos, comments: comments, counts: counts, blobs: blobs, profiles: profiles}
}

// VideoDetail 评论列表失败时返回空列表，不影响视频本身
func (s *VideoService) VideoDetail(ctx context.Context, videoID string, commentsLimit int) (*VideoDetail, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}
	video, err := s.videos.GetVideoWithAuthor(ctx, videoID)
	if err != nil || video == nil {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			hlog.CtxWarnf(ctx, "get video %s failed: %v", videoID, err)
		}
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}

	limit := utils.NormalizeLimit(commentsLimit, constants.DefaultCommentsLimit, utils.MaxLimit)
	comments, err := s.comments.ListVideoComments(ctx, videoID, limit)
	if err != nil {
		hlog.CtxWarnf(ctx, "list comments of video %s failed: %v", videoID, err)
		comments = nil
	}
	if comments == nil {
		comments = make([]*model.Comment, 0)
	}

	video.LikeCount, video.CommentCount = s.counts.ReadCountsForDetail(ctx, &video.Video)
	return &VideoDetail{Video: video, Comments: comments}, nil
}

// Feed 按创建时间倒序，cursor 为上一页最后一条的 created_at
func (s *VideoService) Feed(ctx context.Context, limit int, cursor string) ([]*model.VideoWithAuthor, error) {
	return s.list(ctx, "", limit, cursor)
}

func (s *VideoService) UserVideos(ctx context.Context, userID string, limit int, cursor string) ([]*model.VideoWithAuthor, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errno.ValidationErr.WithMessage("user id is required")
	}
	return s.list(ctx, userID, limit, cursor)
}

func (s *VideoService) list(ctx context.Context, userID string, limit int, cursor string) ([]*model.VideoWithAuthor, error) {
	before, err := utils.ParseCursor(cursor)
	if err != nil {
		return nil, errno.ValidationErr.WithMessage("cursor must be an RFC 3339 timestamp")
	}
	videos, err := s.videos.FeedList(ctx, userID, before, utils.NormalizeLimit(limit, utils.DefaultLimit, utils.MaxLimit))
	if err != nil {
		hlog.CtxErrorf(ctx, "list videos (user=%q) failed: %v", userID, err)
		return nil, errno.DependencyErr.WithMessage("failed to list videos")
	}
	return videos, nil
}

func (s *VideoService) invalidate(ctx context.Context, userIDs ...string) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.Invalidate(ctx, userIDs...); err != nil {
		hlog.CtxWarnf(ctx, "invalidate profile cache %v failed: %v", userIDs, err)
	}
}
