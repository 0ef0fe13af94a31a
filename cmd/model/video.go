package model

import "time"

type Video struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"column:user_id;size:64;index:idx_videos_user_created,priority:1" json:"user_id"`
	S3Key        string    `gorm:"column:s3_key;size:1024" json:"s3_key"`
	URL          string    `gorm:"column:url;size:2048" json:"url"`
	Caption      *string   `gorm:"size:1024" json:"caption"`
	CreatedAt    time.Time `gorm:"index;index:idx_videos_user_created,priority:2" json:"created_at"`
	LikeCount    int64     `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64     `gorm:"not null;default:0" json:"comment_count"`
}

func (Video) TableName() string {
	return "videos"
}

// VideoWithAuthor 视频连同作者用户名，用于 feed 和详情页
type VideoWithAuthor struct {
	Video    `gorm:"embedded"`
	Username string `json:"username"`
}
