package service

import (
	"context"

	"giggles.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var (
	_ mq.LikeEventHandler    = (*CountReconciler)(nil)
	_ mq.CommentEventHandler = (*CountReconciler)(nil)
)

// HandleLikeEvent 消费端再对一次计数，修正并发写入时的覆盖。
// 失败时返回错误，消息会被重新投递一次
func (r *CountReconciler) HandleLikeEvent(ctx context.Context, event *mq.LikeEvent) error {
	if event.VideoID == "" {
		hlog.CtxWarnf(ctx, "drop like event %s without video_id", event.EventID)
		return nil
	}
	n, err := r.reconcile(ctx, event.VideoID, r.likes())
	if err != nil {
		return err
	}
	hlog.CtxInfof(ctx, "like_count of video %s reconciled to %d (event %s)", event.VideoID, n, event.EventID)
	return nil
}

func (r *CountReconciler) HandleCommentEvent(ctx context.Context, event *mq.CommentEvent) error {
	if event.VideoID == "" {
		hlog.CtxWarnf(ctx, "drop comment event %s without video_id", event.EventID)
		return nil
	}
	n, err := r.reconcile(ctx, event.VideoID, r.comments())
	if err != nil {
		return err
	}
	hlog.CtxInfof(ctx, "comment_count of video %s reconciled to %d (event %s)", event.VideoID, n, event.EventID)
	return nil
}
