package mq

import "context"

// MessageProducer 业务侧发布事件，发布失败不影响主流程
type MessageProducer interface {
	PublishLikeEvent(ctx context.Context, event *LikeEvent) error
	PublishCommentEvent(ctx context.Context, event *CommentEvent) error
}

// LikeEventHandler 返回错误时消息会重新入队一次
type LikeEventHandler interface {
	HandleLikeEvent(ctx context.Context, event *LikeEvent) error
}

type CommentEventHandler interface {
	HandleCommentEvent(ctx context.Context, event *CommentEvent) error
}

var _ MessageProducer = (*Producer)(nil)
