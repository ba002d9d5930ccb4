package routes

import (
	"time"

	"toolshare/app"
	"toolshare/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	toolCtl := controllers.NewToolController(s)
	reqCtl := controllers.NewRequestController(s)
	userCtl := controllers.NewUserController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	adminMW := app.AdminOnly(a.Config)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// 图片直接走静态路由
	r.Static("/media", a.Config.MediaRoot)

	// ------------------------------
	// 认证
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
	}
	authProtected := auth.Group("", authMW, seenMW)
	{
		authProtected.POST("/logout", authCtl.Logout)
		authProtected.GET("/whoami", authCtl.Whoami)
	}

	// ------------------------------
	// 工具
	// ------------------------------
	tools := r.Group("/api/tools", authMW, seenMW)
	{
		tools.GET("", toolCtl.ListAvailable) // ?page=&page_size=
		tools.POST("", toolCtl.CreateTool)
		tools.GET("/mine", toolCtl.ListMine)
		tools.GET("/stats", toolCtl.Stats)
		tools.GET("/:id", toolCtl.GetTool)
		tools.PUT("/:id", toolCtl.UpdateTool)
		tools.DELETE("/:id", toolCtl.DeleteTool)
		tools.PUT("/:id/image", toolCtl.UploadImage)
	}

	// ------------------------------
	// 借用请求
	// ------------------------------
	requests := r.Group("/api/requests", authMW, seenMW)
	{
		requests.GET("", reqCtl.ListMine) // ?page=&page_size=
		requests.POST("", reqCtl.CreateRequest)
		requests.GET("/incoming", reqCtl.ListIncoming)
		requests.GET("/stats", reqCtl.Stats)
		requests.GET("/notifications", reqCtl.Notifications)
		requests.POST("/notifications/read", reqCtl.MarkNotificationsRead)
		requests.POST("/:id/approve", reqCtl.Approve)
		requests.POST("/:id/reject", reqCtl.Reject)
		requests.POST("/:id/returned", reqCtl.MarkReturned)
	}

	// ------------------------------
	// 用户管理（仅管理员）
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.GET("", userCtl.ListUsers) // ?q=&page=&size=
		users.GET("/:id", userCtl.GetUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}
}
