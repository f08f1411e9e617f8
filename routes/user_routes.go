package routes

import (
	"github.com/ZTTBuild/pmo_end/controllers"
	"github.com/ZTTBuild/pmo_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户管理路由
func RegisterUserRoutes(router *gin.Engine) {
	users := router.Group("/api/users")
	users.Use(middleware.AuthMiddleware())

	// 获取所有用户 (仅超级管理员)
	users.GET("/", middleware.PermissionMiddleware("users", "read"), controllers.GetUserList)

	// 审核用户 (仅超级管理员)
	users.PUT("/:userId/approve", middleware.PermissionMiddleware("users", "update"), controllers.ApproveUser)

	// 删除用户 (仅超级管理员)
	users.DELETE("/:userId", middleware.PermissionMiddleware("users", "delete"), controllers.DeleteUser)
}
