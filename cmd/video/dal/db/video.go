package db

import (
	"context"
	"time"

	"giggles.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const videoWithAuthorColumns = "v.id, v.user_id, v.s3_key, v.url, v.caption, v.created_at, v.like_count, v.comment_count, u.username"

type VideoDB struct {
	db *gorm.DB
}

func NewVideoDB(db *gorm.DB) *VideoDB {
	return &VideoDB{db: db}
}

func (d *VideoDB) InsertVideo(ctx context.Context, video *model.Video) error {
	return errors.Wrapf(d.db.WithContext(ctx).Create(video).Error, "insert video %s", video.ID)
}

// GetVideoWithAuthor 视频不存在时返回包装后的 gorm.ErrRecordNotFound
func (d *VideoDB) GetVideoWithAuthor(ctx context.Context, videoID string) (*model.VideoWithAuthor, error) {
	var list []*model.VideoWithAuthor
	if err := d.withAuthor(ctx).Where("v.id = ?", videoID).Limit(1).Scan(&list).Error; err != nil {
		return nil, errors.Wrapf(err, "get video %s", videoID)
	}
	if len(list) == 0 {
		return nil, errors.Wrapf(gorm.ErrRecordNotFound, "get video %s", videoID)
	}
	return list[0], nil
}

// FeedList 按创建时间倒序，userID 为空时不按作者过滤，before 为 keyset 游标
func (d *VideoDB) FeedList(ctx context.Context, userID string, before *time.Time, limit int) ([]*model.VideoWithAuthor, error) {
	tx := d.withAuthor(ctx)
	if userID != "" {
		tx = tx.Where("v.user_id = ?", userID)
	}
	if before != nil {
		tx = tx.Where("v.created_at < ?", *before)
	}
	list := make([]*model.VideoWithAuthor, 0)
	if err := tx.Order("v.created_at DESC").Limit(limit).Scan(&list).Error; err != nil {
		return nil, errors.Wrap(err, "feed list")
	}
	return list, nil
}

func (d *VideoDB) CountUserVideos(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Video{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count videos user=%s", userID)
	}
	return count, nil
}

func (d *VideoDB) withAuthor(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).Table("videos AS v").
		Select(videoWithAuthorColumns).
		Joins("LEFT JOIN users u ON u.id = v.user_id")
}
