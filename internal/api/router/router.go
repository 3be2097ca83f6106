package router

import (
	"vidtube/internal/api/handler"
	"vidtube/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 所有业务 Handler
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Tweet        *handler.TweetHandler
	Like         *handler.LikeHandler
	Playlist     *handler.PlaylistHandler
	Subscription *handler.SubscriptionHandler
	Dashboard    *handler.DashboardHandler
	Search       *handler.SearchHandler
}

// Options 路由级中间件配置
type Options struct {
	Auth        gin.HandlerFunc
	ImageUpload middleware.UploadLimits
	VideoUpload middleware.UploadLimits
}

// Setup 注册所有业务路由
func Setup(r *gin.Engine, h Handlers, opts Options) {
	v1 := r.Group("/api/v1")
	auth := opts.Auth

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		users.POST("/register", middleware.StageUploads(opts.ImageUpload, "avatar", "coverImage"), h.Auth.Register)
		users.POST("/login", h.Auth.Login)
		users.POST("/refresh-token", h.Auth.RefreshToken)

		usersAuth := users.Group("", auth)
		{
			usersAuth.POST("/logout", h.Auth.Logout)
			usersAuth.POST("/change-password", h.Auth.ChangePassword)
			usersAuth.GET("/current-user", h.User.GetCurrentUser)
			usersAuth.PATCH("/update-account-details", h.User.UpdateAccountDetails)
			usersAuth.PATCH("/update-avatar", middleware.StageUploads(opts.ImageUpload, "avatar"), h.User.UpdateAvatar)
			usersAuth.PATCH("/update-cover-image", middleware.StageUploads(opts.ImageUpload, "coverImage"), h.User.UpdateCoverImage)
			usersAuth.GET("/c/:username", h.User.GetChannelProfile)
			usersAuth.GET("/history", h.User.GetWatchHistory)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos", auth)
	{
		videos.GET("", h.Video.ListVideos)
		videos.GET("/published", h.Video.ListPublished)
		videos.GET("/:id", h.Video.GetByID)
		videos.POST("/uploadnew", middleware.StageUploads(opts.VideoUpload, "videoFile", "thumbnail"), h.Video.Upload)
		videos.DELETE("/delete/:id", h.Video.Delete)
		videos.PUT("/updatecontent/:id", middleware.StageUploads(opts.ImageUpload, "thumbnail"), h.Video.UpdateDetails)
		videos.PUT("/updatevideocontent/:id", middleware.StageUploads(opts.ImageUpload, "thumbnail"), h.Video.UpdateContent)
		videos.PATCH("/toggle-publish/:id", h.Video.TogglePublish)
		videos.POST("/watch/:id", h.Video.AddToWatchHistory)
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", auth)
	{
		comments.POST("/addcomment/:id", h.Comment.Add)
		comments.GET("/getcomments/:id", h.Comment.ListByVideo)
		comments.PATCH("/update/:id", h.Comment.Update)
		comments.DELETE("/delete/:id", h.Comment.Delete)
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets", auth)
	{
		tweets.POST("/uploadnew", h.Tweet.Create)
		tweets.PUT("/update/:id", h.Tweet.Update)
		tweets.DELETE("/delete/:id", h.Tweet.Delete)
		tweets.GET("/get/:id", h.Tweet.ListByUser)
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", auth)
	{
		likes.PATCH("/video/:id", h.Like.ToggleVideoLike)
		likes.PATCH("/tweet/:id", h.Like.ToggleTweetLike)
		likes.PATCH("/comment/:id", h.Like.ToggleCommentLike)
		likes.GET("/likedvideos", h.Like.GetLikedVideos)
	}

	// --- 播放列表模块 ---
	playlist := v1.Group("/playlist", auth)
	{
		playlist.POST("/create", h.Playlist.Create)
		playlist.GET("/getbyuser/:id", h.Playlist.ListByUser)
		playlist.GET("/get/:id", h.Playlist.GetByID)
		playlist.PATCH("/addvideo/:playlistId/:videoId", h.Playlist.AddVideo)
		playlist.PATCH("/removevideo/:playlistId/:videoId", h.Playlist.RemoveVideo)
		playlist.DELETE("/delete/:playlistId", h.Playlist.Delete)
		playlist.PATCH("/update/:playlistId", h.Playlist.Update)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", auth)
	{
		subscriptions.GET("/getsubscribed", h.Subscription.ListSubscribedChannels)
		subscriptions.POST("/toggle/:id", h.Subscription.Toggle)
		subscriptions.GET("/getsubscribers/:id", h.Subscription.ListSubscribers)
	}

	// --- 控制台 ---
	dashboard := v1.Group("/dashboard", auth)
	{
		dashboard.GET("/stats", h.Dashboard.GetChannelStats)
		dashboard.GET("/videos", h.Dashboard.GetChannelVideos)
	}

	// --- 搜索（公开） ---
	v1.GET("/search/videos", h.Search.SearchVideos)
}
