package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/config"
	"github.com/mindcare/internal/handler"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	a := handler.NewAPI(gdb, cfg)

	// 头像等上传文件的静态访问
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	api := r.Group("/api")
	{
		// 无需登录的公开路由
		api.GET("/health", a.Health)
		api.POST("/auth/register", a.Register)
		api.POST("/auth/login", a.Login)
		api.GET("/resources", a.ListResources)
		api.GET("/resources/:id", a.GetResource)
		api.GET("/counselors", a.ListCounselors)
		api.GET("/counselors/:id", a.GetCounselor)
		api.GET("/search", a.Search)
		api.GET("/emergency-contacts", a.ListEmergencyContacts)
		api.POST("/newsletter/subscribe", a.SubscribeNewsletter)

		// 需要认证的路由
		auth := api.Group("")
		auth.Use(a.AuthRequired())
		{
			auth.GET("/profile", a.GetProfile)
			auth.PUT("/profile", a.UpdateProfile)
			auth.POST("/upload/avatar", a.UploadAvatar)
			auth.GET("/export/user-data", a.ExportData)

			auth.POST("/mood", a.CreateMood)
			auth.GET("/mood", a.ListMood)
			auth.GET("/mood/analytics", a.GetMoodAnalytics)

			auth.POST("/journal", a.CreateJournal)
			auth.GET("/journal", a.ListJournal)

			auth.POST("/appointments", a.CreateAppointment)
			auth.GET("/appointments", a.ListAppointments)

			auth.POST("/feedback", a.CreateFeedback)

			auth.POST("/chat/sessions", a.StartChat)
			auth.POST("/chat/sessions/:sessionId/messages", a.PostChatMessage)

			auth.GET("/analytics/dashboard", a.Dashboard)
		}
	}

	return r
}
