package service

import (
	"context"
	"strings"

	"giggles.com/pkg/constants"
	"giggles.com/pkg/errno"
	"giggles.com/pkg/mq"
	"giggles.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type LikeStore interface {
	UpsertLike(ctx context.Context, videoID, userID string) error
	DeleteLike(ctx context.Context, videoID, userID string) error
	GetLikedVideoIDs(ctx context.Context, userID string, limit int) ([]string, error)
}

type LikeService struct {
	store  LikeStore
	counts *CountReconciler
	events mq.MessageProducer
}

// NewLikeService events 可以为 nil，此时不发布事件
func NewLikeService(store LikeStore, counts *CountReconciler, events mq.MessageProducer) *LikeService {
	return &LikeService{store: store, counts: counts, events: events}
}

// Like 幂等，返回最新的点赞数
func (s *LikeService) Like(ctx context.Context, videoID, userID string) (int64, error) {
	videoID, userID = strings.TrimSpace(videoID), strings.TrimSpace(userID)
	if videoID == "" || userID == "" {
		return 0, errno.ValidationErr.WithMessage("video_id and user_id are required")
	}
	if err := s.store.UpsertLike(ctx, videoID, userID); err != nil {
		hlog.CtxErrorf(ctx, "like video %s by %s failed: %v", videoID, userID, err)
		return 0, errno.DependencyErr.WithMessage("failed to like video")
	}
	count := s.counts.ReconcileLikeCount(ctx, videoID)
	s.publish(ctx, mq.NewLikeEvent(videoID, userID, mq.ActionLike))
	return count, nil
}

// Unlike 取消不存在的点赞也返回成功
func (s *LikeService) Unlike(ctx context.Context, videoID, userID string) (int64, error) {
	videoID, userID = strings.TrimSpace(videoID), strings.TrimSpace(userID)
	if videoID == "" || userID == "" {
		return 0, errno.ValidationErr.WithMessage("video_id and user_id are required")
	}
	if err := s.store.DeleteLike(ctx, videoID, userID); err != nil {
		hlog.CtxErrorf(ctx, "unlike video %s by %s failed: %v", videoID, userID, err)
		return 0, errno.DependencyErr.WithMessage("failed to unlike video")
	}
	count := s.counts.ReconcileLikeCount(ctx, videoID)
	s.publish(ctx, mq.NewLikeEvent(videoID, userID, mq.ActionUnlike))
	return count, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, userID string, limit int) ([]string, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errno.ValidationErr.WithMessage("user_id is required")
	}
	ids, err := s.store.GetLikedVideoIDs(ctx, userID, utils.NormalizeLimit(limit, constants.DefaultLikesLimit, utils.MaxLimit))
	if err != nil {
		hlog.CtxErrorf(ctx, "list liked videos of %s failed: %v", userID, err)
		return nil, errno.DependencyErr.WithMessage("failed to list liked videos")
	}
	return ids, nil
}

func (s *LikeService) publish(ctx context.Context, event *mq.LikeEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLikeEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish like event failed: %v", err)
	}
}
