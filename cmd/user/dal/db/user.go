package db

import (
	"context"

	"giggles.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserDB struct {
	db *gorm.DB
}

func NewUserDB(db *gorm.DB) *UserDB {
	return &UserDB{db: db}
}

// GetUser 用户不存在时返回包装后的 gorm.ErrRecordNotFound
// withAura 为 false 时不查询 aura 列，用于旧表结构上的降级查询
func (d *UserDB) GetUser(ctx context.Context, userID string, withAura bool) (*model.User, error) {
	columns := []string{"id", "username", "avatar_url"}
	if withAura {
		columns = append(columns, "aura")
	}
	var user model.User
	if err := d.db.WithContext(ctx).Select(columns).Where("id = ?", userID).Take(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "get user %s", userID)
	}
	return &user, nil
}

func (d *UserDB) GetUsername(ctx context.Context, userID string) (string, error) {
	var names []string
	if err := d.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Limit(1).Pluck("username", &names).Error; err != nil {
		return "", errors.Wrapf(err, "get username %s", userID)
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}
