package model

// User 用户由外部系统创建，这里只读
type User struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	Username  string `gorm:"size:64" json:"username"`
	AvatarURL string `gorm:"column:avatar_url;size:1024" json:"avatar_url"`
	Aura      int64  `gorm:"not null;default:0" json:"aura"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile 个人主页聚合视图
type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Aura      int64  `json:"aura"`
	Posts     int64  `json:"posts"`
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
}
