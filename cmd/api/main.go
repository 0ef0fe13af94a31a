package main

import (
	"context"
	"time"

	imagedb "giggles.com/cmd/image/dal/db"
	imageservice "giggles.com/cmd/image/service"
	interactiondb "giggles.com/cmd/interaction/dal/db"
	interactionservice "giggles.com/cmd/interaction/service"
	relationdb "giggles.com/cmd/relation/dal/db"
	relationservice "giggles.com/cmd/relation/service"
	userdb "giggles.com/cmd/user/dal/db"
	userservice "giggles.com/cmd/user/service"
	videodb "giggles.com/cmd/video/dal/db"
	videoservice "giggles.com/cmd/video/service"

	imagehandlers "giggles.com/cmd/api/handlers/image"
	interactionhandlers "giggles.com/cmd/api/handlers/interaction"
	relationhandlers "giggles.com/cmd/api/handlers/relation"
	userhandlers "giggles.com/cmd/api/handlers/user"
	videohandlers "giggles.com/cmd/api/handlers/video"

	"giggles.com/config"
	"giggles.com/config/jaeger"
	"giggles.com/config/pprof"
	"giggles.com/pkg/cache"
	"giggles.com/pkg/constants"
	"giggles.com/pkg/database"
	"giggles.com/pkg/errno"
	"giggles.com/pkg/mq"
	"giggles.com/pkg/oss"
	"giggles.com/pkg/retry"
	"giggles.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
)

func main() {
	config.Init()
	conf := config.ConfigInfo
	pprof.Load(conf.Server.PprofAddr)

	if conf.Jaeger.Enabled {
		if _, closer, err := jaeger.InitJaeger(constants.ServiceName, conf.Jaeger.Agent); err == nil {
			defer closer.Close()
		}
	}

	db, err := database.NewMySQL(utils.GetMysqlDsn(), database.Options{
		MaxOpenConns: conf.Mysql.MaxOpenConns,
		MaxIdleConns: conf.Mysql.MaxIdleConns,
		AutoMigrate:  conf.Mysql.AutoMigrate,
	})
	if err != nil {
		hlog.Fatalf("init mysql failed: %v", err)
	}

	minioClient, err := oss.InitMinio(conf.Minio.Endpoint, conf.Minio.AccessKey, conf.Minio.SecretKey, conf.Minio.UseSSL)
	if err != nil {
		hlog.Fatalf("init minio failed: %v", err)
	}
	storage := oss.NewStorage(minioClient, conf.Minio.Bucket, conf.Minio.PublicURL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := storage.EnsureBucket(ctx); err != nil {
		hlog.Warnf("ensure bucket %s failed: %v", conf.Minio.Bucket, err)
	}
	cancel()

	rdb := cache.NewClient(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
	defer rdb.Close()
	profiles := cache.NewProfileCache(rdb, config.Duration(conf.Redis.ProfileTTL, 30*time.Second))
	limiter := cache.NewRateLimiter(rdb, conf.Comment.RateLimit, config.Duration(conf.Comment.RateWindow, time.Minute))

	// 消息队列不可用时只是不发事件，接口照常工作
	var events mq.MessageProducer
	if producer, err := mq.NewProducer(config.RabbitMqURL()); err != nil {
		hlog.Warnf("rabbitmq unavailable, interaction events disabled: %v", err)
	} else {
		events = producer
		defer producer.Close()
	}

	videoStore := videodb.NewVideoDB(db)
	interactionStore := interactiondb.NewInteractionDB(db)
	relationStore := relationdb.NewRelationDB(db)
	userStore := userdb.NewUserDB(db)
	imageStore := imagedb.NewImageDB(db)

	counts := interactionservice.NewCountReconciler(interactionStore)
	policy := retry.Policy{
		Attempts: conf.Relation.CountRetryAttempts,
		Delay:    config.Duration(conf.Relation.CountRetryDelay, 80*time.Millisecond),
	}

	handlers := apiHandlers{
		video: videohandlers.New(videoservice.NewVideoService(videoStore, interactionStore, counts, storage, profiles)),
		interaction: interactionhandlers.New(
			interactionservice.NewLikeService(interactionStore, counts, events),
			interactionservice.NewCommentService(interactionStore, userStore, limiter, counts, events),
		),
		relation: relationhandlers.New(relationservice.NewRelationService(relationStore, policy, profiles)),
		user:     userhandlers.New(userservice.NewUserService(userStore, videoStore, relationStore, profiles)),
		image:    imagehandlers.New(imageservice.NewImageService(imageStore, storage)),
	}

	h := server.New(
		server.WithHostPorts(conf.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(conf.Server.MaxBodySize),
	)

	// 配置 CORS
	h.Use(cors.New(cors.Config{
		AllowOrigins:     conf.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,           // 是否允许发送凭证
		MaxAge:           12 * time.Hour, // 预检请求的缓存时间
	}))

	// 错误处理，不向调用方暴露堆栈
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(errno.HTTPStatus(errno.ServiceErr), map[string]interface{}{
				"code":    errno.ServiceErr.ErrCode,
				"message": errno.ServiceErr.ErrMsg,
			})
		})))

	// 注册路由
	register(h, handlers)

	h.Spin()
}
