package mq

import (
	"time"

	"github.com/google/uuid"
)

// LikeEvent 点赞事件
type LikeEvent struct {
	EventID    string `json:"event_id"`    // 事件ID
	VideoID    string `json:"video_id"`    // 视频ID
	UserID     string `json:"user_id"`     // 用户ID
	ActionType string `json:"action_type"` // "like" or "unlike"
	Timestamp  int64  `json:"timestamp"`   // 时间戳
}

// CommentEvent 评论事件
type CommentEvent struct {
	EventID    string `json:"event_id"`
	VideoID    string `json:"video_id"`
	UserID     string `json:"user_id"`
	ActionType string `json:"action_type"` // create
	Timestamp  int64  `json:"timestamp"`
}

// 常量定义
const (
	// 交换机名称
	LikeEventExchange    = "like_events"
	CommentEventExchange = "comment_events"

	// 队列名称
	LikeEventQueue    = "like_event_queue"
	CommentEventQueue = "comment_event_queue"

	ActionLike          = "like"
	ActionUnlike        = "unlike"
	ActionCommentCreate = "create"
)

func NewLikeEvent(videoID, userID, action string) *LikeEvent {
	return &LikeEvent{
		EventID:    uuid.NewString(),
		VideoID:    videoID,
		UserID:     userID,
		ActionType: action,
		Timestamp:  time.Now().Unix(),
	}
}

func NewCommentEvent(videoID, userID string) *CommentEvent {
	return &CommentEvent{
		EventID:    uuid.NewString(),
		VideoID:    videoID,
		UserID:     userID,
		ActionType: ActionCommentCreate,
		Timestamp:  time.Now().Unix(),
	}
}
