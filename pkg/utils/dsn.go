package utils

import (
	"strings"

	"giggles.com/config"
)

// GetMysqlDsn 生成数据库的dsn，timeout/readTimeout/writeTimeout 给每条语句兜底
func GetMysqlDsn() string {
	c := config.ConfigInfo.Mysql
	timeout := c.Timeout
	if timeout == "" {
		timeout = "5s"
	}
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := strings.Join([]string{c.Username, ":", c.Password, "@tcp(", c.Addr, ")/", c.Database,
		"?charset=", charset, "&parseTime=true&loc=UTC",
		"&timeout=", timeout, "&readTimeout=", timeout, "&writeTimeout=", timeout}, "") //nolint:lll

	return dsn
}
