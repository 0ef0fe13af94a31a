package model

import "time"

// Like 以 (video_id, user_id) 为联合主键，重复点赞是幂等的
type Like struct {
	VideoID   string    `gorm:"primaryKey;size:36" json:"video_id"`
	UserID    string    `gorm:"primaryKey;size:64;index:idx_likes_user_created,priority:1" json:"user_id"`
	CreatedAt time.Time `gorm:"index:idx_likes_user_created,priority:2" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	VideoID   string    `gorm:"size:36;index:idx_comments_video_created,priority:1" json:"video_id"`
	UserID    string    `gorm:"size:64" json:"user_id"`
	Username  string    `gorm:"size:64" json:"username"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `gorm:"index:idx_comments_video_created,priority:2" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
