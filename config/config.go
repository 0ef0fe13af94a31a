package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// 使用Viper的好处在于支持配置文件的热更新 同时viper对于大小写并不敏感 都是统一进行处理
// 环境变量可以覆盖配置文件，例如 MYSQL_ADDR 覆盖 mysql.addr
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	// 手动从viper获取配置值，避免Unmarshal问题
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.MaxBodySize = viper.GetInt("server.max_body_size")
	ConfigInfo.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	ConfigInfo.Server.PprofAddr = viper.GetString("server.pprof_addr")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.Timeout = viper.GetString("mysql.timeout")
	ConfigInfo.Mysql.MaxOpenConns = viper.GetInt("mysql.max_open_conns")
	ConfigInfo.Mysql.MaxIdleConns = viper.GetInt("mysql.max_idle_conns")
	ConfigInfo.Mysql.AutoMigrate = viper.GetBool("mysql.auto_migrate")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")
	ConfigInfo.Redis.ProfileTTL = viper.GetString("redis.profile_ttl")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.Bucket = viper.GetString("minio.bucket")
	ConfigInfo.Minio.PublicURL = viper.GetString("minio.public_url")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Jaeger.Enabled = viper.GetBool("jaeger.enabled")
	ConfigInfo.Jaeger.Agent = viper.GetString("jaeger.agent")

	ConfigInfo.Relation.CountRetryAttempts = viper.GetInt("relation.count_retry_attempts")
	ConfigInfo.Relation.CountRetryDelay = viper.GetString("relation.count_retry_delay")

	ConfigInfo.Comment.RateLimit = viper.GetInt64("comment.rate_limit")
	ConfigInfo.Comment.RateWindow = viper.GetString("comment.rate_window")

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	logrus.Infof("Config loaded - MinIO: %s bucket=%s, Redis: %s, RabbitMQ: %s",
		ConfigInfo.Minio.Endpoint, ConfigInfo.Minio.Bucket, ConfigInfo.Redis.Addr, ConfigInfo.RabbitMq.Addr)
}

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8888")
	viper.SetDefault("server.max_body_size", 512*1024*1024)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("mysql.addr", "127.0.0.1:3306")
	viper.SetDefault("mysql.database", "giggles")
	viper.SetDefault("mysql.username", "root")
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("mysql.timeout", "5s")
	viper.SetDefault("mysql.max_open_conns", 50)
	viper.SetDefault("mysql.max_idle_conns", 10)
	viper.SetDefault("mysql.auto_migrate", true)

	viper.SetDefault("redis.addr", "127.0.0.1:6379")
	viper.SetDefault("redis.profile_ttl", "30s")

	viper.SetDefault("minio.endpoint", "127.0.0.1:9000")
	viper.SetDefault("minio.bucket", "giggles-s3-bucket")
	viper.SetDefault("minio.public_url", "http://127.0.0.1:9000")

	viper.SetDefault("rabbitmq.addr", "127.0.0.1:5672")
	viper.SetDefault("rabbitmq.username", "guest")
	viper.SetDefault("rabbitmq.password", "guest")

	viper.SetDefault("jaeger.agent", "127.0.0.1:6831")

	viper.SetDefault("relation.count_retry_attempts", 3)
	viper.SetDefault("relation.count_retry_delay", "80ms")

	viper.SetDefault("comment.rate_limit", 10)
	viper.SetDefault("comment.rate_window", "1m")
}

// RabbitMqURL 拼接 amqp 连接串
func RabbitMqURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s/", ConfigInfo.RabbitMq.Username, ConfigInfo.RabbitMq.Password, ConfigInfo.RabbitMq.Addr)
}

// Duration 解析配置里的时长，解析失败时返回 def
func Duration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.Errorf("Failed to parse duration '%s': %v, using default: %v", value, err, def)
		return def
	}
	return d
}
