// Package dbtest 提供不连接 MySQL 的 gorm DryRun 实例，用来断言各个 store 生成的 SQL。
package dbtest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Recorder 记录每条语句展开参数后的 SQL
type Recorder struct {
	mu   sync.Mutex
	sqls []string
}

func (r *Recorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *Recorder) Info(context.Context, string, ...interface{})  {}
func (r *Recorder) Warn(context.Context, string, ...interface{})  {}
func (r *Recorder) Error(context.Context, string, ...interface{}) {}

func (r *Recorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	if sql == "" {
		return
	}
	r.mu.Lock()
	r.sqls = append(r.sqls, sql)
	r.mu.Unlock()
}

// SQL 按执行顺序返回已记录的语句
func (r *Recorder) SQL() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sqls...)
}

// Last 最后一条语句，没有时返回空串
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sqls) == 0 {
		return ""
	}
	return r.sqls[len(r.sqls)-1]
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sqls = nil
	r.mu.Unlock()
}

// Contains 是否有语句包含 substr
func (r *Recorder) Contains(substr string) bool {
	for _, s := range r.SQL() {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

// NewDryRun 使用 MySQL 方言构建 SQL 但不执行，不需要数据库服务
func NewDryRun(t *testing.T) (*gorm.DB, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "giggles:giggles@tcp(127.0.0.1:3306)/giggles?charset=utf8mb4&parseTime=true&loc=UTC",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db, rec
}
