package routes

import (
	"github.com/ZTTBuild/pmo_end/controllers"
	"github.com/ZTTBuild/pmo_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterProjectRoutes 注册项目及项目下属资源路由
// 清单活动、进度看板、时间轴都挂在项目路径下，天然携带项目范围
func RegisterProjectRoutes(router *gin.Engine) {
	projects := router.Group("/api/projects")
	projects.Use(middleware.AuthMiddleware())

	projects.GET("/", controllers.GetProjectList)
	projects.GET("/:projectId", controllers.GetProjectDetail)
	projects.POST("/", middleware.PermissionMiddleware("projects", "create"), controllers.CreateProject)
	projects.PUT("/:projectId", middleware.PermissionMiddleware("projects", "update"), controllers.UpdateProject)
	projects.DELETE("/:projectId", middleware.PermissionMiddleware("projects", "delete"), controllers.DeleteProject)

	// 清单活动
	projects.GET("/:projectId/activities", controllers.GetActivityList)
	projects.POST("/:projectId/activities", middleware.PermissionMiddleware("activities", "create"), controllers.CreateActivity)

	// 进度看板与时间轴视图
	projects.GET("/:projectId/activity-progress", controllers.GetActivityProgress)
	projects.GET("/:projectId/timeline", controllers.GetProjectTimeline)

	// 活动的更新删除按活动ID定位，不再需要项目范围
	activities := router.Group("/api/activities")
	activities.Use(middleware.AuthMiddleware())

	activities.PUT("/:activityId", middleware.PermissionMiddleware("activities", "update"), controllers.UpdateActivity)
	activities.DELETE("/:activityId", middleware.PermissionMiddleware("activities", "delete"), controllers.DeleteActivity)
}
