package utils

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// NormalizeLimit 非正数取默认值，超过上限截断
func NormalizeLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// ParseCursor 解析 keyset 分页游标（RFC3339 时间戳），空串表示第一页
func ParseCursor(cursor string) (*time.Time, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid cursor %q", cursor)
	}
	return &t, nil
}

// FormatCursor 把时间格式化成下一页的游标
func FormatCursor(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
