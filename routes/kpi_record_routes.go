package routes

import (
	"github.com/ZTTBuild/pmo_end/controllers"
	"github.com/ZTTBuild/pmo_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterKPIRecordRoutes 注册KPI测量记录路由
func RegisterKPIRecordRoutes(router *gin.Engine) {
	kpiRecords := router.Group("/api/kpi-records")
	kpiRecords.Use(middleware.AuthMiddleware())

	kpiRecords.GET("", controllers.GetKPIRecordList)
	kpiRecords.POST("", middleware.PermissionMiddleware("kpiRecords", "create"), controllers.CreateKPIRecord)

	// 批量导入及按导入批次回滚
	kpiRecords.POST("/batch", middleware.PermissionMiddleware("kpiRecords", "create"), controllers.BatchCreateKPIRecords)
	kpiRecords.DELETE("/batch/:batchId", middleware.PermissionMiddleware("kpiRecords", "delete"), controllers.DeleteKPIRecordBatch)
}
