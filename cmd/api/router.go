package main

import (
	imagehandlers "giggles.com/cmd/api/handlers/image"
	interactionhandlers "giggles.com/cmd/api/handlers/interaction"
	relationhandlers "giggles.com/cmd/api/handlers/relation"
	userhandlers "giggles.com/cmd/api/handlers/user"
	videohandlers "giggles.com/cmd/api/handlers/video"
	"github.com/cloudwego/hertz/pkg/route"
)

type apiHandlers struct {
	video       *videohandlers.Handler
	interaction *interactionhandlers.Handler
	relation    *relationhandlers.Handler
	user        *userhandlers.Handler
	image       *imagehandlers.Handler
}

// register 路径参数统一命名为 :id，同一位置的参数名必须一致
func register(r route.IRoutes, h apiHandlers) {
	r.GET("/health", Health)

	r.POST("/uploads", h.video.UploadVideo)
	r.GET("/uploads", h.video.ListUploads)

	r.GET("/videos", h.video.FeedList)
	r.GET("/videos/:id", h.video.VideoDetail)
	r.POST("/videos/:id/like", h.interaction.LikeVideo)
	r.DELETE("/videos/:id/like", h.interaction.UnlikeVideo)
	r.POST("/videos/:id/comments", h.interaction.CreateComment)

	r.GET("/users/:id", h.user.GetUserInfo)
	r.GET("/users/:id/videos", h.video.UserVideos)
	r.GET("/users/:id/likes", h.interaction.LikeList)
	r.GET("/users/:id/is_following", h.relation.IsFollowing)
	r.POST("/users/:id/follow", h.relation.Follow)
	r.DELETE("/users/:id/follow", h.relation.Unfollow)

	r.POST("/images/upload", h.image.UploadImage)
	r.GET("/images", h.image.ListImages)
	r.GET("/images/search", h.image.SearchImages)
	r.DELETE("/images/:id", h.image.DeleteImage)
}
