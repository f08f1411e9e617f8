package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZTTBuild/pmo_end/engine"
	"github.com/ZTTBuild/pmo_end/models"
	"github.com/ZTTBuild/pmo_end/utils"
)

// GetActivityProgress 获取项目进度看板
//
// KPI记录按项目批量加载一次，完整集合传给每个活动的对账计算。
// 对账是无共享状态的纯扫描，每行一个goroutine并发计算，结果互不影响。
func GetActivityProgress(c *gin.Context) {
	projectID := c.Param("projectId")
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"projectId": projectID,
		"user":      currentUser.Username,
	}, "[进度看板] 获取活动进度")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, ok := findProjectByID(ctx, c, projectID)
	if !ok {
		return
	}

	activities, err := loadProjectActivities(ctx, project)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	records, err := loadProjectKPIRecords(ctx, project)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	rows := make([]models.ActivityProgressRow, len(activities))
	var wg sync.WaitGroup
	for i := range activities {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			activity := activities[i]
			agg, result := engine.EvaluateActivity(activity, records)
			rows[i] = buildProgressRow(activity, agg, result)
		}(i)
	}
	wg.Wait()

	utils.LogInfo(map[string]interface{}{
		"projectId":     projectID,
		"activityCount": len(activities),
		"recordCount":   len(records),
	}, "[进度看板] 活动进度计算完成")

	utils.SuccessResponse(c, models.ActivityProgressResponse{
		ProjectID:   projectID,
		ProjectName: project.ProjectName,
		Rows:        rows,
		RecordCount: len(records),
	}, "")
}

// buildProgressRow 把对账结果平铺为看板行
func buildProgressRow(activity models.Activity, agg engine.MatchedAggregate, result engine.ProgressResult) models.ActivityProgressRow {
	return models.ActivityProgressRow{
		ActivityID:      activity.ID.Hex(),
		ActivityName:    activity.Name(),
		ProjectFullCode: activity.FullCode(),
		Zone:            activity.Zone(),
		Unit:            activity.Unit,
		PlannedUnits:    activity.PlannedUnits,
		TotalValue:      activity.TotalValue,
		PlannedCount:    agg.PlannedCount,
		ActualCount:     agg.ActualCount,
		TotalPlanned:    agg.TotalPlanned,
		TotalActual:     agg.TotalActual,
		HasData:         agg.HasData,
		ProgressPercent: result.ProgressPercent,
		Status:          string(result.Status),
		Rate:            result.Rate,
		ExecutedValue:   result.ExecutedValue,
	}
}
