package router

import (
	"time"

	"gameforge/config"
	"gameforge/internal/handler"
	"gameforge/internal/middleware"
	"gameforge/internal/repository"
	"gameforge/internal/service"
	"gameforge/internal/ws"
	"gameforge/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger, cloud cloudinary.Client, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	sanctionRepo := repository.NewSanctionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	gamificationRepo := repository.NewGamificationRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, hub)
	gamificationSvc := service.NewGamificationService(log, userRepo, gamificationRepo, notifSvc)
	moderationSvc := service.NewModerationService(db, log, userRepo, reportRepo, contentRepo, notifSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	channelHandler := handler.NewChannelHandler(contentRepo, auditRepo)
	badgeHandler := handler.NewBadgeHandler(gamificationRepo, auditRepo)
	postHandler := handler.NewPostHandler(contentRepo, gamificationSvc)
	commentHandler := handler.NewCommentHandler(contentRepo, gamificationSvc)
	reportHandler := handler.NewReportHandler(reportRepo, contentRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	meHandler := handler.NewMeHandler(userRepo, gamificationSvc, cloud)
	leaderboardHandler := handler.NewLeaderboardHandler(gamificationSvc)
	adminHandler := handler.NewAdminHandler(adminRepo, reportRepo, sanctionRepo, auditRepo, moderationSvc, hub)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		api.GET("/channels", channelHandler.List)
		api.GET("/channels/:channel_id/posts", postHandler.List)
		api.GET("/posts/:id", postHandler.Get)
		api.GET("/posts/:id/comments", commentHandler.List)
		api.GET("/leaderboard", leaderboardHandler.Get)
		api.GET("/badges", badgeHandler.List)

		authed := api.Group("")
		authed.Use(authMw)
		{
			authed.POST("/posts", postHandler.Create)
			authed.POST("/posts/:id/comments", commentHandler.Create)
			authed.POST("/reports", reportHandler.Create)

			me := authed.Group("/me")
			{
				me.GET("/profile", meHandler.GetProfile)
				me.PATCH("/profile", meHandler.UpdateProfile)
				me.POST("/avatar", meHandler.UploadAvatar)
				me.GET("/notifications", notificationHandler.List)
				me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			}
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PATCH("/users/:id", adminHandler.UpdateUser)
			admin.POST("/users/:id/sanctions", adminHandler.CreateSanction)
			admin.GET("/users/:id/sanctions", adminHandler.ListSanctions)
			admin.GET("/reports", adminHandler.ListReports)
			admin.PUT("/reports/:id", adminHandler.ResolveReport)
			admin.GET("/moderation-log", adminHandler.ListModerationLog)
			admin.GET("/analytics", adminHandler.Analytics)
			admin.POST("/channels", channelHandler.Create)
			admin.POST("/badges", badgeHandler.Create)
		}
	}

	r.GET("/ws/notifications", ws.UpgradeNotificationsWS(&cfg.JWT, hub))

	return r
}
