package routes

import (
	"github.com/ZTTBuild/pmo_end/controllers"
	"github.com/ZTTBuild/pmo_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterSystemConfigRoutes(router *gin.Engine) {
	systemConfigRoutes := router.Group("/api/system-configs")

	systemConfigRoutes.Use(middleware.AuthMiddleware())

	systemConfigRoutes.GET("", controllers.GetSystemConfigs)
	systemConfigRoutes.POST("", middleware.PermissionMiddleware("systemConfigs", "update"), controllers.UpsertSystemConfig)
}
