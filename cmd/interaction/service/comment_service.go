package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"giggles.com/cmd/model"
	"giggles.com/pkg/constants"
	"giggles.com/pkg/errno"
	"giggles.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
}

type UsernameLookup interface {
	GetUsername(ctx context.Context, userID string) (string, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type CommentService struct {
	store   CommentStore
	users   UsernameLookup
	limiter RateLimiter
	counts  *CountReconciler
	events  mq.MessageProducer
}

// NewCommentService limiter 和 events 可以为 nil
func NewCommentService(store CommentStore, users UsernameLookup, limiter RateLimiter, counts *CountReconciler, events mq.MessageProducer) *CommentService {
	return &CommentService{store: store, users: users, limiter: limiter, counts: counts, events: events}
}

// CreateComment 返回新评论和视频最新的评论数
func (s *CommentService) CreateComment(ctx context.Context, videoID, userID, text string) (*model.Comment, int64, error) {
	videoID, userID, text = strings.TrimSpace(videoID), strings.TrimSpace(userID), strings.TrimSpace(text)
	if videoID == "" || userID == "" || text == "" {
		return nil, 0, errno.ValidationErr.WithMessage("video_id, user_id and text are required")
	}
	if utf8.RuneCountInString(text) > constants.MaxCommentLength {
		return nil, 0, errno.ValidationErr.WithMessage(fmt.Sprintf("comment exceeds %d characters", constants.MaxCommentLength))
	}
	if !s.allow(ctx, userID) {
		return nil, 0, errno.TooManyRequestsErr.WithMessage("too many comments, please slow down")
	}

	username, err := s.users.GetUsername(ctx, userID)
	if err != nil {
		hlog.CtxWarnf(ctx, "lookup username of %s failed: %v", userID, err)
		username = ""
	}

	comment := &model.Comment{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		UserID:    userID,
		Username:  username,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		hlog.CtxErrorf(ctx, "create comment on video %s failed: %v", videoID, err)
		return nil, 0, errno.DependencyErr.WithMessage("failed to create comment")
	}

	count := s.counts.ReconcileCommentCount(ctx, videoID)
	if s.events != nil {
		if err := s.events.PublishCommentEvent(ctx, mq.NewCommentEvent(videoID, userID)); err != nil {
			hlog.CtxWarnf(ctx, "publish comment event failed: %v", err)
		}
	}
	return comment, count, nil
}

// allow 限流器不可用时放行
func (s *CommentService) allow(ctx context.Context, userID string) bool {
	if s.limiter == nil {
		return true
	}
	ok, err := s.limiter.Allow(ctx, fmt.Sprintf(constants.CommentRateKey, userID))
	if err != nil {
		hlog.CtxWarnf(ctx, "comment rate limiter unavailable: %v", err)
		return true
	}
	return ok
}
