package database

import (
	"time"

	"giggles.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"
)

// Options 连接池与迁移配置
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// NewMySQL 打开 MySQL 连接，所有业务 store 共享返回的 *gorm.DB
func NewMySQL(dsn string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			// 把驱动的唯一键冲突翻译成 gorm.ErrDuplicatedKey
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Warn),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "register opentracing plugin")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = time.Hour
	}
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if opts.AutoMigrate {
		hlog.Info("Starting tables migration...")
		if err = model.AutoMigrate(db); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
		hlog.Info("Tables migration completed successfully")
	}
	return db, nil
}
