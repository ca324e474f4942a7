// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	VideoHandler        *handler.VideoHandler
	CommentHandler      *handler.CommentHandler
	PlaylistHandler     *handler.PlaylistHandler
	SubscriptionHandler *handler.SubscriptionHandler
	DashboardHandler    *handler.DashboardHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	videoHandler        *handler.VideoHandler
	commentHandler      *handler.CommentHandler
	playlistHandler     *handler.PlaylistHandler
	subscriptionHandler *handler.SubscriptionHandler
	dashboardHandler    *handler.DashboardHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		videoHandler:        params.VideoHandler,
		commentHandler:      params.CommentHandler,
		playlistHandler:     params.PlaylistHandler,
		subscriptionHandler: params.SubscriptionHandler,
		dashboardHandler:    params.DashboardHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api/v1")

	// Session routes, no token required
	userGroup := api.Group("/users")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.POST("/login", r.userHandler.Login)
		userGroup.POST("/refresh-access-token", r.userHandler.RefreshAccessToken)
	}

	// Account routes that require authentication
	accountGroup := api.Group("/users")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.POST("/logout", r.userHandler.Logout)
		accountGroup.PATCH("/change-password", r.userHandler.ChangePassword)
		accountGroup.GET("/current", r.userHandler.CurrentUser)
		accountGroup.PATCH("/update-account", r.userHandler.UpdateAccount)
		accountGroup.PATCH("/avatar", r.userHandler.UpdateAvatar)
		accountGroup.PATCH("/cover-image", r.userHandler.UpdateCoverImage)
		accountGroup.GET("/channel/:username", r.userHandler.ChannelProfile)
		accountGroup.GET("/watch-history", r.userHandler.WatchHistory)
	}

	videoGroup := api.Group("/videos")
	videoGroup.Use(r.authMiddleware.Authenticate)
	{
		videoGroup.GET("", r.videoHandler.List)
		videoGroup.POST("", r.videoHandler.Publish)
		videoGroup.GET("/:videoId", r.videoHandler.Get)
		videoGroup.PATCH("/:videoId", r.videoHandler.Update)
		videoGroup.DELETE("/:videoId", r.videoHandler.Delete)
		videoGroup.PATCH("/:videoId/toggle-publish", r.videoHandler.TogglePublishStatus)
		videoGroup.GET("/:videoId/comments", r.commentHandler.ListByVideo)
		videoGroup.POST("/:videoId/comments", r.commentHandler.Add)
	}

	commentGroup := api.Group("/comments")
	commentGroup.Use(r.authMiddleware.Authenticate)
	{
		commentGroup.PATCH("/:commentId", r.commentHandler.Update)
		commentGroup.DELETE("/:commentId", r.commentHandler.Delete)
	}

	playlistGroup := api.Group("/playlists")
	playlistGroup.Use(r.authMiddleware.Authenticate)
	{
		playlistGroup.POST("", r.playlistHandler.Create)
		playlistGroup.GET("/:playlistId", r.playlistHandler.Get)
		playlistGroup.PATCH("/:playlistId", r.playlistHandler.Update)
		playlistGroup.DELETE("/:playlistId", r.playlistHandler.Delete)
		playlistGroup.POST("/:playlistId/videos/:videoId", r.playlistHandler.AddVideo)
		playlistGroup.DELETE("/:playlistId/videos/:videoId", r.playlistHandler.RemoveVideo)
		playlistGroup.GET("/user/:userId", r.playlistHandler.ListByOwner)
	}

	subscriptionGroup := api.Group("/subscriptions")
	subscriptionGroup.Use(r.authMiddleware.Authenticate)
	{
		subscriptionGroup.POST("/channel/:channelId", r.subscriptionHandler.Toggle)
		subscriptionGroup.GET("/channel/:channelId/subscribers", r.subscriptionHandler.ListSubscribers)
		subscriptionGroup.GET("/subscribed", r.subscriptionHandler.ListSubscribedChannels)
	}

	dashboardGroup := api.Group("/dashboard")
	dashboardGroup.Use(r.authMiddleware.Authenticate)
	{
		dashboardGroup.GET("/stats", r.dashboardHandler.ChannelStats)
		dashboardGroup.GET("/videos", r.dashboardHandler.ChannelVideos)
	}
}
