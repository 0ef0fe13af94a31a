package model

import "time"

// Follow 关注关系：FollowerID 关注了 FollowedID
type Follow struct {
	FollowerID string    `gorm:"primaryKey;size:64" json:"follower_id"`
	FollowedID string    `gorm:"primaryKey;size:64;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
