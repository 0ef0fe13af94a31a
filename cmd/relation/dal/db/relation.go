package db

import (
	"context"
	"time"

	"giggles.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationDB follower 关注了 followed
type RelationDB struct {
	db *gorm.DB
}

func NewRelationDB(db *gorm.DB) *RelationDB {
	return &RelationDB{db: db}
}

// UpsertFollow 以 (follower_id, followed_id) 为冲突目标，冲突时什么都不做
func (d *RelationDB) UpsertFollow(ctx context.Context, followerID, followedID string) error {
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followed_id"}},
		DoNothing: true,
	}).Create(newFollow(followerID, followedID)).Error
	return errors.Wrapf(err, "upsert follow %s->%s", followerID, followedID)
}

// CreateFollow 普通插入，重复时返回包装后的 gorm.ErrDuplicatedKey
func (d *RelationDB) CreateFollow(ctx context.Context, followerID, followedID string) error {
	err := d.db.WithContext(ctx).Create(newFollow(followerID, followedID)).Error
	return errors.Wrapf(err, "create follow %s->%s", followerID, followedID)
}

func (d *RelationDB) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	err := d.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{}).Error
	return errors.Wrapf(err, "delete follow %s->%s", followerID, followedID)
}

func (d *RelationDB) IsRelationExist(ctx context.Context, followerID, followedID string) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "check follow %s->%s", followerID, followedID)
	}
	return count > 0, nil
}

// GetFollowerCount 粉丝数
func (d *RelationDB) GetFollowerCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Follow{}).Where("followed_id = ?", userID).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count followers user=%s", userID)
	}
	return count, nil
}

// GetFollowingCount 关注数
func (d *RelationDB) GetFollowingCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count following user=%s", userID)
	}
	return count, nil
}

func newFollow(followerID, followedID string) *model.Follow {
	return &model.Follow{FollowerID: followerID, FollowedID: followedID, CreatedAt: time.Now().UTC()}
}
