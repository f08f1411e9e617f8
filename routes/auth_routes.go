package routes

import (
	"github.com/ZTTBuild/pmo_end/controllers"
	"github.com/ZTTBuild/pmo_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证路由
func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")

	// 公开路由 - 不需要认证
	auth.POST("/login", controllers.Login)
	auth.POST("/register", controllers.Register)

	// 需要认证的路由
	auth.GET("/validate", middleware.AuthMiddleware(), controllers.ValidateToken)
}
