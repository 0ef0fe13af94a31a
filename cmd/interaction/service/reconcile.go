package service

import (
	"context"

	"giggles.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// CounterStore 计数来源(点赞表/评论表)与视频表上的冗余计数字段
type CounterStore interface {
	CountVideoLikes(ctx context.Context, videoID string) (int64, error)
	UpdateVideoLikeCount(ctx context.Context, videoID string, count int64) error
	CountVideoComments(ctx context.Context, videoID string) (int64, error)
	UpdateVideoCommentCount(ctx context.Context, videoID string, count int64) error
}

// CountReconciler 每次变更后从关联表重新数一遍并写回视频表。
// 不加锁，并发写入时后写者覆盖先写者
type CountReconciler struct {
	store CounterStore
}

func NewCountReconciler(store CounterStore) *CountReconciler {
	return &CountReconciler{store: store}
}

type counter struct {
	name   string
	count  func(ctx context.Context, videoID string) (int64, error)
	update func(ctx context.Context, videoID string, count int64) error
}

func (r *CountReconciler) likes() counter {
	return counter{"like_count", r.store.CountVideoLikes, r.store.UpdateVideoLikeCount}
}

func (r *CountReconciler) comments() counter {
	return counter{"comment_count", r.store.CountVideoComments, r.store.UpdateVideoCommentCount}
}

// ReconcileLikeCount 失败时返回 0，不返回错误
func (r *CountReconciler) ReconcileLikeCount(ctx context.Context, videoID string) int64 {
	return r.reconcileOrZero(ctx, videoID, r.likes())
}

func (r *CountReconciler) ReconcileCommentCount(ctx context.Context, videoID string) int64 {
	return r.reconcileOrZero(ctx, videoID, r.comments())
}

// ReadCountsForDetail 优先用视频表上的冗余字段，字段为 0 时实时数一次
func (r *CountReconciler) ReadCountsForDetail(ctx context.Context, video *model.Video) (likes, comments int64) {
	return r.readOrCount(ctx, video.ID, video.LikeCount, r.likes()),
		r.readOrCount(ctx, video.ID, video.CommentCount, r.comments())
}

func (r *CountReconciler) readOrCount(ctx context.Context, videoID string, stored int64, c counter) int64 {
	if stored != 0 {
		return stored
	}
	live, err := c.count(ctx, videoID)
	if err != nil {
		hlog.CtxWarnf(ctx, "fallback %s count failed for video %s: %v", c.name, videoID, err)
		return 0
	}
	if live != 0 {
		// 顺手修正冗余字段
		if err := c.update(ctx, videoID, live); err != nil {
			hlog.CtxWarnf(ctx, "write back %s for video %s failed: %v", c.name, videoID, err)
		}
	}
	return live
}

func (r *CountReconciler) reconcileOrZero(ctx context.Context, videoID string, c counter) int64 {
	n, err := r.reconcile(ctx, videoID, c)
	if err != nil {
		hlog.CtxWarnf(ctx, "reconcile %s for video %s failed: %v", c.name, videoID, err)
		return 0
	}
	return n
}

func (r *CountReconciler) reconcile(ctx context.Context, videoID string, c counter) (int64, error) {
	n, err := c.count(ctx, videoID)
	if err != nil {
		return 0, err
	}
	if err := c.update(ctx, videoID, n); err != nil {
		return 0, err
	}
	return n, nil
}
