package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	interactiondb "giggles.com/cmd/interaction/dal/db"
	"giggles.com/cmd/interaction/service"
	"giggles.com/config"
	"giggles.com/config/jaeger"
	"giggles.com/pkg/constants"
	"giggles.com/pkg/database"
	"giggles.com/pkg/mq"
	"giggles.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/sirupsen/logrus"
)

// 消费点赞/评论事件，对事件涉及的视频重新对一次计数
func main() {
	// 初始化日志
	hlog.SetLevel(hlog.LevelInfo)

	// 初始化配置和依赖
	config.Init()
	conf := config.ConfigInfo

	if conf.Jaeger.Enabled {
		if _, closer, err := jaeger.InitJaeger(constants.ConsumerName, conf.Jaeger.Agent); err == nil {
			defer closer.Close()
		}
	}

	db, err := database.NewMySQL(utils.GetMysqlDsn(), database.Options{
		MaxOpenConns: conf.Mysql.MaxOpenConns,
		MaxIdleConns: conf.Mysql.MaxIdleConns,
	})
	if err != nil {
		logrus.Fatalf("Failed to init mysql: %v", err)
	}
	reconciler := service.NewCountReconciler(interactiondb.NewInteractionDB(db))
	hlog.Info("Dependencies initialized successfully")

	// 创建消费者
	consumer, err := mq.NewConsumer(config.RabbitMqURL())
	if err != nil {
		logrus.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	// 创建上下文
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动点赞事件消费者
	if err := consumer.ConsumeLikeEvents(ctx, reconciler); err != nil {
		logrus.Fatalf("Failed to start like event consumer: %v", err)
	}
	hlog.Info("Like event consumer started")

	// 启动评论事件消费者
	if err := consumer.ConsumeCommentEvents(ctx, reconciler); err != nil {
		logrus.Fatalf("Failed to start comment event consumer: %v", err)
	}
	hlog.Info("Comment event consumer started")

	hlog.Info("Event consumer started successfully, waiting for messages...")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	hlog.Info("Shutting down event consumer...")

	// 优雅关闭
	cancel()
	time.Sleep(2 * time.Second) // 给消费者一些时间来处理正在进行的消息

	hlog.Info("Event consumer stopped")
}
