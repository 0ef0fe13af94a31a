package db

import (
	"context"
	"time"

	"giggles.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionDB 点赞与评论表，以及视频表上的两个冗余计数字段
type InteractionDB struct {
	db *gorm.DB
}

func NewInteractionDB(db *gorm.DB) *InteractionDB {
	return &InteractionDB{db: db}
}

// UpsertLike 重复点赞不报错
func (d *InteractionDB) UpsertLike(ctx context.Context, videoID, userID string) error {
	like := &model.Like{VideoID: videoID, UserID: userID, CreatedAt: time.Now().UTC()}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(like).Error
	return errors.Wrapf(err, "upsert like video=%s user=%s", videoID, userID)
}

// DeleteLike 删除不存在的点赞不算错误
func (d *InteractionDB) DeleteLike(ctx context.Context, videoID, userID string) error {
	err := d.db.WithContext(ctx).Where("video_id = ? AND user_id = ?", videoID, userID).Delete(&model.Like{}).Error
	return errors.Wrapf(err, "delete like video=%s user=%s", videoID, userID)
}

func (d *InteractionDB) CountVideoLikes(ctx context.Context, videoID string) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count likes video=%s", videoID)
	}
	return count, nil
}

func (d *InteractionDB) UpdateVideoLikeCount(ctx context.Context, videoID string, count int64) error {
	err := d.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).Update("like_count", count).Error
	return errors.Wrapf(err, "update like_count video=%s", videoID)
}

func (d *InteractionDB) CountVideoComments(ctx context.Context, videoID string) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count comments video=%s", videoID)
	}
	return count, nil
}

func (d *InteractionDB) UpdateVideoCommentCount(ctx context.Context, videoID string, count int64) error {
	err := d.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).Update("comment_count", count).Error
	return errors.Wrapf(err, "update comment_count video=%s", videoID)
}

// GetLikedVideoIDs 用户点赞过的视频，最近点赞的在前
func (d *InteractionDB) GetLikedVideoIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	list := make([]string, 0)
	if err := d.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Pluck("video_id", &list).Error; err != nil {
		return nil, errors.Wrapf(err, "list liked videos user=%s", userID)
	}
	return list, nil
}

func (d *InteractionDB) CreateComment(ctx context.Context, comment *model.Comment) error {
	return errors.Wrapf(d.db.WithContext(ctx).Create(comment).Error, "create comment video=%s", comment.VideoID)
}

// ListVideoComments 最新的评论在前，用户名优先取 users 表，取不到时用评论里冗余的用户名
func (d *InteractionDB) ListVideoComments(ctx context.Context, videoID string, limit int) ([]*model.Comment, error) {
	list := make([]*model.Comment, 0)
	err := d.db.WithContext(ctx).Table("comments AS c").
		Select("c.id, c.video_id, c.user_id, COALESCE(u.username, c.username) AS username, c.text, c.created_at").
		Joins("LEFT JOIN users u ON u.id = c.user_id").
		Where("c.video_id = ?", videoID).
		Order("c.created_at DESC").
		Limit(limit).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list comments video=%s", videoID)
	}
	return list, nil
}
