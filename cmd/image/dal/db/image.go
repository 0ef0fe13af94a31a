package db

import (
	"context"
	"time"

	"giggles.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ImageDB struct {
	db *gorm.DB
}

func NewImageDB(db *gorm.DB) *ImageDB {
	return &ImageDB{db: db}
}

func (d *ImageDB) InsertImage(ctx context.Context, image *model.Image) error {
	return errors.Wrapf(d.db.WithContext(ctx).Create(image).Error, "insert image %s", image.ID)
}

// GetUserImage 只返回属于该用户的图片，不存在或不属于该用户时返回包装后的 gorm.ErrRecordNotFound
func (d *ImageDB) GetUserImage(ctx context.Context, imageID, userID string) (*model.Image, error) {
	var image model.Image
	if err := d.db.WithContext(ctx).Where("id = ? AND user_id = ?", imageID, userID).Take(&image).Error; err != nil {
		return nil, errors.Wrapf(err, "get image %s", imageID)
	}
	return &image, nil
}

func (d *ImageDB) DeleteImage(ctx context.Context, imageID string) error {
	return errors.Wrapf(d.db.WithContext(ctx).Where("id = ?", imageID).Delete(&model.Image{}).Error, "delete image %s", imageID)
}

func (d *ImageDB) ListImages(ctx context.Context, userID string, before *time.Time, limit int) ([]*model.Image, error) {
	tx := d.db.WithContext(ctx).Where("user_id = ?", userID)
	if before != nil {
		tx = tx.Where("created_at < ?", *before)
	}
	list := make([]*model.Image, 0)
	if err := tx.Order("created_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, errors.Wrapf(err, "list images user=%s", userID)
	}
	return list, nil
}

// SearchImages 每个 token 对 storage_path 或 url 做不区分大小写的子串匹配，所有条件 OR 起来
// tokens 由字母数字组成，不含 LIKE 通配符
func (d *ImageDB) SearchImages(ctx context.Context, userID string, tokens []string, limit int) ([]*model.Image, error) {
	list := make([]*model.Image, 0)
	if len(tokens) == 0 {
		return list, nil
	}

	conds := make([]clause.Expression, 0, len(tokens)*2)
	for _, token := range tokens {
		pattern := "%" + token + "%"
		conds = append(conds,
			clause.Expr{SQL: "LOWER(storage_path) LIKE ?", Vars: []interface{}{pattern}},
			clause.Expr{SQL: "LOWER(url) LIKE ?", Vars: []interface{}{pattern}},
		)
	}

	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(clause.Or(conds...)).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, errors.Wrapf(err, "search images user=%s", userID)
	}
	return list, nil
}
